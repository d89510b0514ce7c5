package storage

import (
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// ConversationRep is one unit of credential or proof exchange. MessageID is
// the agency-assigned reference of the inbound message that started the
// conversation, or NoMessageID for locally-initiated ones; it is the
// deduplication key that makes repeated inbound polling idempotent.
type ConversationRep struct {
	ID          string
	WalletName  string
	PartnerName string
	Kind        Kind
	MessageID   string
	Status      Status
	Result      ProofResult
	ConvData    []byte // serialized protocol state blob

	Seq uint64
}

func NewConversationRep(d []byte) *ConversationRep {
	c := &ConversationRep{}
	dto.FromGOB(d, c)
	return c
}

func (c *ConversationRep) Data() []byte {
	return dto.ToGOB(c)
}

func AddConversationRep(c *ConversationRep) (err error) {
	return addData([]byte(c.ID), c.Data(), bucketConversation)
}

func GetConversationRep(id string) (c *ConversationRep, found bool, err error) {
	found, err = get([]byte(id), bucketConversation, func(d []byte) {
		c = NewConversationRep(d)
	})
	if !found {
		c = nil
	}
	return c, found, err
}

// UpdateConversationRep rejects writes racing with another poller.
func UpdateConversationRep(c *ConversationRep) (err error) {
	defer err2.Handle(&err, "update conversation")

	cur, found, err := GetConversationRep(c.ID)
	try.To(err)
	if found && cur.Seq != c.Seq {
		return ErrStale
	}
	c.Seq++
	return AddConversationRep(c)
}

func ConversationReps(accept func(*ConversationRep) bool) (cs []*ConversationRep, err error) {
	defer err2.Handle(&err, "list conversations")

	values := try.To1(getAll(bucketConversation))
	cs = make([]*ConversationRep, 0, len(values))
	for _, d := range values {
		c := NewConversationRep(d)
		if accept == nil || accept(c) {
			cs = append(cs, c)
		}
	}
	return cs, nil
}

// HaveConversationForMessage tells if an inbound message is already ingested
// for the wallet. NoMessageID never matches.
func HaveConversationForMessage(walletName, messageID string) (yes bool, err error) {
	if messageID == NoMessageID || messageID == "" {
		return false, nil
	}
	cs, err := ConversationReps(func(c *ConversationRep) bool {
		return c.WalletName == walletName && c.MessageID == messageID
	})
	if err != nil {
		return false, err
	}
	return len(cs) > 0, nil
}

// PendingPollConversations returns the wallet+partner conversations still
// waiting for the counterpart, i.e. the ones in Sent status.
func PendingPollConversations(walletName, partnerName string) ([]*ConversationRep, error) {
	return ConversationReps(func(c *ConversationRep) bool {
		return c.WalletName == walletName &&
			c.PartnerName == partnerName &&
			c.Status == StatusSent
	})
}
