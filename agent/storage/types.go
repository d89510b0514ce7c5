package storage

// Status is the lifecycle status of a connection or conversation record.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusSent     Status = "Sent"
	StatusActive   Status = "Active"
	StatusAccepted Status = "Accepted"
)

// Direction tells which side of the invitation this connection record is.
type Direction string

const (
	Outbound Direction = "Outbound"
	Inbound  Direction = "Inbound"
)

// Kind tags a conversation record with the protocol exchange it is driving.
// The zero value is Unknown and every dispatcher handles it explicitly.
type Kind int

const (
	KindUnknown Kind = iota
	KindCredentialOffer
	KindCredentialRequest
	KindIssueCredential
	KindProofRequest
	KindProofOffer
)

func (k Kind) String() string {
	switch k {
	case KindCredentialOffer:
		return "CredentialOffer"
	case KindCredentialRequest:
		return "CredentialRequest"
	case KindIssueCredential:
		return "IssueCredential"
	case KindProofRequest:
		return "ProofRequest"
	case KindProofOffer:
		return "ProofOffer"
	default:
		return "Unknown"
	}
}

// ProofResult is the derived verification sub-result of a proof request
// conversation. Empty until the conversation reaches Accepted.
type ProofResult string

const (
	ProofNone        ProofResult = ""
	ProofVerified    ProofResult = "Verified"
	ProofNotVerified ProofResult = "Not Verified"
)

// NoMessageID marks locally-initiated conversations which have no agency
// message reference yet. It never participates in deduplication.
const NoMessageID = "N/A"
