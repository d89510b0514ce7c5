/*
Package vcx is the boundary to the credential agency SDK. It offers blocking
call semantics over what is natively an asynchronous agent runtime: a Session
is opened with a wallet-specific configuration blob, performs protocol
operations one at a time, and is closed when the caller is done. Callers that
need many operations against the same wallet (conversation polling) hold one
Session over all of them instead of reinitializing per call.

The interfaces here are the dependency-injection seam for the state machines:
the production implementation lives in vcx/indy, tests plug in fakes without a
native library or a network.
*/
package vcx

import "context"

// State is the protocol object state as the agency reports it.
type State int

const (
	StateNone State = iota
	StateInitialized
	StateOfferSent
	StateRequestReceived
	StateAccepted
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateInitialized:
		return "Initialized"
	case StateOfferSent:
		return "OfferSent"
	case StateRequestReceived:
		return "RequestReceived"
	case StateAccepted:
		return "Accepted"
	default:
		return "Unknown"
	}
}

// ProofState is the cryptographic verification result of a received proof.
type ProofState int

const (
	ProofUndefined ProofState = iota
	ProofVerified
	ProofInvalid
)

// Agency provisions and opens wallet-scoped runtime sessions.
type Agency interface {
	// Provision onboards a new agent to the agency and returns the agent
	// configuration blob that Open accepts later.
	Provision(ctx context.Context, cfg ProvisionConfig) (conf []byte, err error)

	// CreateWallet creates the named wallet. An already existing wallet is
	// not an error.
	CreateWallet(ctx context.Context, name, key string) error

	// OpenWallet opens a wallet handle. A wrong key fails with
	// ErrAuthFailure.
	OpenWallet(ctx context.Context, name, key string) (handle int, err error)

	// CloseWallet releases the handle.
	CloseWallet(ctx context.Context, handle int) error

	// Open initializes the agent runtime with a wallet-specific
	// configuration blob. The returned Session must be closed.
	Open(ctx context.Context, conf []byte) (Session, error)
}

// Session is an initialized agent runtime context. Every method performs
// exactly one logical protocol operation.
type Session interface {
	CreateConnection(ctx context.Context, label string) (Connection, error)
	ConnectionFromInvite(ctx context.Context, label string, invite []byte) (Connection, error)
	DeserializeConnection(ctx context.Context, data []byte) (Connection, error)

	CreateIssuerCredential(ctx context.Context, tag string, attrs map[string]string,
		credDefData []byte, name string) (IssuerCredential, error)
	DeserializeIssuerCredential(ctx context.Context, data []byte) (IssuerCredential, error)

	CredentialFromOffer(ctx context.Context, offer []byte) (Credential, error)
	DeserializeCredential(ctx context.Context, data []byte) (Credential, error)

	CreateProofRequest(ctx context.Context, sourceID, name string,
		attrs []ProofAttr, predicates []ProofPredicate) (ProofRequest, error)
	DeserializeProofRequest(ctx context.Context, data []byte) (ProofRequest, error)

	ProofFromRequest(ctx context.Context, request []byte) (DisclosedProof, error)
	DeserializeProof(ctx context.Context, data []byte) (DisclosedProof, error)

	CreateSchema(ctx context.Context, name, version string, attrs []string) (LedgerRecord, error)
	CreateCredDef(ctx context.Context, schemaID, tag string) (LedgerRecord, error)

	// CredentialOffers and PresentationRequests poll the agency for inbound
	// messages addressed to the connection. Message reference IDs are stable
	// across polls; callers deduplicate on them.
	CredentialOffers(ctx context.Context, conn Connection) ([]InboundMessage, error)
	PresentationRequests(ctx context.Context, conn Connection) ([]InboundMessage, error)

	Close(ctx context.Context) error
}

// Connection is a pairwise DID connection protocol object.
type Connection interface {
	Connect(ctx context.Context) error
	UpdateState(ctx context.Context) (State, error)
	InviteDetails(ctx context.Context) ([]byte, error)
	Serialize() ([]byte, error)
}

// IssuerCredential drives the issuer side of credential issuance.
type IssuerCredential interface {
	SendOffer(ctx context.Context, conn Connection) error
	UpdateState(ctx context.Context) (State, error)
	SendCredential(ctx context.Context, conn Connection) error
	Serialize() ([]byte, error)
}

// Credential drives the holder side of credential issuance.
type Credential interface {
	SendRequest(ctx context.Context, conn Connection) error
	UpdateState(ctx context.Context) (State, error)
	Serialize() ([]byte, error)
}

// ProofRequest drives the verifier side of a proof exchange.
type ProofRequest interface {
	Request(ctx context.Context, conn Connection) error
	UpdateState(ctx context.Context) (State, error)

	// Proof fetches the received proof and returns its verification state.
	// Valid only after UpdateState has reported StateAccepted.
	Proof(ctx context.Context, conn Connection) (ProofState, error)

	Serialize() ([]byte, error)
}

// DisclosedProof drives the prover side of a proof exchange.
type DisclosedProof interface {
	// Credentials lists the wallet credentials that can satisfy the proof
	// request, per requested attribute referent.
	Credentials(ctx context.Context) (*CredentialsForProof, error)

	// Generate builds the proof from chosen credentials and self-attested
	// values, then Send delivers it over the connection.
	Generate(ctx context.Context, selected map[string]CredentialInfo, selfAttested map[string]string) error
	Send(ctx context.Context, conn Connection) error

	Serialize() ([]byte, error)
}

// LedgerRecord is the result of writing a schema or cred def to the ledger.
type LedgerRecord struct {
	ID   string // ledger-assigned identifier
	Data []byte // serialized protocol object
}

// InboundMessage is one agency-held message waiting for this agent.
type InboundMessage struct {
	MsgRefID string
	Payload  []byte
}

// ProofAttr is one attribute the verifier wants proven.
type ProofAttr struct {
	Name         string   `json:"name"`
	Restrictions []Filter `json:"restrictions,omitempty"`
}

// ProofPredicate is one predicate the verifier wants proven.
type ProofPredicate struct {
	Name   string   `json:"name"`
	PType  string   `json:"p_type"`
	PValue int      `json:"p_value"`
	Restr  []Filter `json:"restrictions,omitempty"`
}

// Filter restricts acceptable credentials by their issuance coordinates.
type Filter struct {
	IssuerDID string `json:"issuer_did,omitempty"`
	SchemaID  string `json:"schema_id,omitempty"`
	CredDefID string `json:"cred_def_id,omitempty"`
}

// CredentialInfo identifies one wallet credential usable for an attribute.
type CredentialInfo struct {
	Referent  string            `json:"referent"`
	SchemaID  string            `json:"schema_id"`
	CredDefID string            `json:"cred_def_id"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// CredentialsForProof maps requested attribute referents to the candidate
// credentials the wallet holds for them.
type CredentialsForProof struct {
	Attrs map[string][]CredentialInfo `json:"attrs"`
}
