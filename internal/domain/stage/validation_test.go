package stage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDetail(t *testing.T) {
	cases := []struct {
		name    string
		kind    Kind
		scope   string
		tools   []string
		wantErr bool
	}{
		{"robot complete", KindRobot, "invoice pipeline", []string{"UiPath"}, false},
		{"system complete", KindSystem, "billing API", []string{"Go", "SQLite"}, false},
		{"not applicable carries nothing", KindNotApplicable, "", nil, false},
		{"robot missing scope", KindRobot, "  ", []string{"UiPath"}, true},
		{"robot missing tools", KindRobot, "invoice pipeline", nil, true},
		{"system blank tool entry", KindSystem, "billing API", []string{"Go", " "}, true},
		{"unknown kind", Kind("manual"), "", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDetail(tc.kind, tc.scope, tc.tools)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestKindRequiresScope(t *testing.T) {
	require.True(t, KindRobot.RequiresScope())
	require.True(t, KindSystem.RequiresScope())
	require.False(t, KindNotApplicable.RequiresScope())
}
