package vcx

import "encoding/json"

// ProvisionConfig carries everything the agency needs to onboard an agent.
// The core never hardcodes these; the cmds layer fills them from settings.
type ProvisionConfig struct {
	AgencyURL    string `json:"agency_url"`
	AgencyDID    string `json:"agency_did"`
	AgencyVerkey string `json:"agency_verkey"`

	PoolName    string `json:"pool_name"`
	GenesisPath string `json:"genesis_path"`

	WalletName string `json:"wallet_name"`
	WalletKey  string `json:"wallet_key"`

	// StorageConfig and StorageCredentials configure the wallet storage
	// backend and are passed through opaquely.
	StorageConfig      json.RawMessage `json:"storage_config,omitempty"`
	StorageCredentials json.RawMessage `json:"storage_credentials,omitempty"`

	PaymentMethod string `json:"payment_method,omitempty"`

	// EnterpriseSeed is the DID seed; role dependent for trustee wallets.
	EnterpriseSeed string `json:"enterprise_seed,omitempty"`

	InstitutionName    string `json:"institution_name"`
	InstitutionLogoURL string `json:"institution_logo_url,omitempty"`
}

// Config is the parsed form of the agent configuration blob a successful
// Provision returns. The state machines treat the blob as opaque bytes; only
// the agency implementations parse it.
type Config struct {
	ProvisionConfig

	// AgentDID and AgentVerkey are assigned by the agency at provisioning.
	AgentDID    string `json:"remote_to_sdk_did,omitempty"`
	AgentVerkey string `json:"remote_to_sdk_verkey,omitempty"`

	// InstitutionDID is the agent's public ledger DID, derived from the
	// enterprise seed at provisioning. Issuer operations sign with it.
	InstitutionDID    string `json:"institution_did,omitempty"`
	InstitutionVerkey string `json:"institution_verkey,omitempty"`
}

// ParseConfig decodes an agent configuration blob.
func ParseConfig(conf []byte) (c Config, err error) {
	err = json.Unmarshal(conf, &c)
	return c, err
}

// Bytes encodes the configuration back to its blob form.
func (c Config) Bytes() []byte {
	b, _ := json.Marshal(c)
	return b
}
