package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentStatusJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    StudentStatus
		wantErr bool
	}{
		{in: `"Active"`, want: StudentStatusActive},
		{in: `"graduate"`, want: StudentStatusGraduate},
		{in: `""`, want: StudentStatusActive},
		{in: `3`, want: StudentStatusDropped},
		{in: `"Expelled"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var s StudentStatus
			err := json.Unmarshal([]byte(tt.in), &s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}

	out, err := json.Marshal(StudentStatusPending)
	require.NoError(t, err)
	assert.JSONEq(t, `"Pending"`, string(out))
}

func TestParsePaymentMode(t *testing.T) {
	mode, err := ParsePaymentMode("Online")
	require.NoError(t, err)
	assert.Equal(t, PaymentModeOnline, mode)

	mode, err = ParsePaymentMode("")
	require.NoError(t, err)
	assert.Equal(t, PaymentModeCash, mode)

	_, err = ParsePaymentMode("cheque")
	assert.Error(t, err)
}

func TestParseDictationType(t *testing.T) {
	for i, name := range []string{"SD", "sd/dd", "D3", "d4"} {
		got, err := ParseDictationType(name)
		require.NoError(t, err)
		assert.Equal(t, DictationType(i), got)
	}
	_, err := ParseDictationType("D5")
	assert.Error(t, err)
}

func TestDraftStateEditable(t *testing.T) {
	assert.True(t, DraftStateFailed.Editable())
	assert.False(t, DraftStateSubmitting.Editable())
	assert.Equal(t, "Saved", DraftStateSaved.String())
}
