package mcp

const serverInstructions = `lattice tracks project schedules as Projects → Macro stages → Stages → Tasks.

Core concepts:
- Project: top-level container with descriptive metadata and a derived date range.
- Macro stage: an ordered phase of a project. Each macro stage holds EITHER
  stages OR directly attached tasks, never both; its structure locks in when
  the first child is added and can only change while it has no children.
- Stage: an ordered group of tasks inside a "stages" macro stage. Robot and
  system stages carry a scope and a tool list.
- Task: the only entity with user-entered start and end dates. All dates
  above it (stage, macro stage, project) are derived as earliest start /
  latest end of children and cannot be set directly.
- Weekly update: a dated free-text progress note on a task.

Rules of engagement:
1) Orient: call list_projects, then get_project_tree for the full hierarchy.
2) Build top-down: create_project → create_macrostage → create_stage or
   create_task. Creating a stage commits the macro stage to "stages";
   creating a direct task commits it to "tasks".
3) Dates are YYYY-MM-DD strings. Set them only on tasks; parents update
   automatically in the same operation.
4) Reordering takes the complete ID list of the siblings being reordered.
   A partial or duplicated list is rejected.
5) Deletes cascade downward and shrink ancestor date ranges immediately.
`
