package cmds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalletNames(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"user email", WalletNameForUser("Alice.Smith@Example.com"), "i_alice_smith_example_com"},
		{"plain user", WalletNameForUser("bob@faber.edu"), "i_bob_faber_edu"},
		{"org with spaces", WalletNameForOrg("Faber College"), "o_faber_college"},
		{"plain org", WalletNameForOrg("Acme"), "o_acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestWalletNamesAreStable(t *testing.T) {
	assert.Equal(t, WalletNameForUser("alice@example.com"), WalletNameForUser("ALICE@example.com"))
	assert.Equal(t, WalletNameForOrg("Faber College"), WalletNameForOrg("faber college"))
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey(""))
	assert.NoError(t, ValidateKey("6cih1cVgRH8yHD54nEYyPRyH8aGGjyc575yufWiQjmzj"))
	assert.Error(t, ValidateKey("too-short"))
}

func TestValidateSeed(t *testing.T) {
	assert.NoError(t, ValidateSeed(""))
	assert.NoError(t, ValidateSeed("000000000000000000000000Trustee1"))
	assert.Error(t, ValidateSeed("short"))
}

func TestCmdValidate(t *testing.T) {
	assert.Error(t, Cmd{}.Validate())
	assert.NoError(t, Cmd{WalletName: "i_alice"}.Validate())
}
