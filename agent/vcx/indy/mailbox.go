package indy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Message type tags used on the agency mailbox wire.
const (
	msgTypeConnResponse = "connection-response"
	msgTypeCredOffer    = "credential-offer"
	msgTypeCredRequest  = "credential-request"
	msgTypeCredential   = "credential"
	msgTypeCredACK      = "credential-ack"
	msgTypeProofRequest = "presentation-request"
	msgTypeProof        = "presentation"
)

// boxMsg is one message held by the credential agency for an agent. RefID is
// the agency-assigned reference id, stable across polls; it is what the
// conversation layer deduplicates on.
type boxMsg struct {
	RefID   string          `json:"msg_ref_id"`
	Type    string          `json:"type"`
	FromDID string          `json:"from_did"`
	ToDID   string          `json:"to_did"`
	Thread  string          `json:"thread_id,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// mailbox is the HTTP client to the agency's message store. The agency holds
// protocol messages for agents that are not directly addressable; both sides
// of an exchange poll their own mailbox.
type mailbox struct {
	baseURL string
	hc      *http.Client
}

func newMailbox(baseURL string) *mailbox {
	return &mailbox{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: utils.HTTPReqTimeout},
	}
}

// Register introduces a freshly provisioned agent DID to the agency so it
// gets a mailbox of its own.
func (m *mailbox) Register(ctx context.Context, agentDID, verkey string) (err error) {
	defer err2.Handle(&err, "mailbox register")

	data := try.To1(json.Marshal(map[string]string{
		"did":    agentDID,
		"verkey": verkey,
	}))
	req := try.To1(http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/agent", bytes.NewReader(data)))
	req.Header.Set("Content-Type", "application/json")

	res := try.To1(m.hc.Do(req))
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("agency status %d", res.StatusCode)
	}
	return nil
}

// Post delivers a message to the partner's mailbox.
func (m *mailbox) Post(ctx context.Context, msg boxMsg) (err error) {
	defer err2.Handle(&err, "mailbox post")

	data := try.To1(json.Marshal(msg))
	req := try.To1(http.NewRequestWithContext(ctx, http.MethodPost,
		m.baseURL+"/msg", bytes.NewReader(data)))
	req.Header.Set("Content-Type", "application/json")

	res := try.To1(m.hc.Do(req))
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("agency status %d", res.StatusCode)
	}
	return nil
}

// Fetch lists the messages of the given type waiting for the DID. Messages
// stay in the mailbox until acknowledged.
func (m *mailbox) Fetch(ctx context.Context, toDID, msgType string) (msgs []boxMsg, err error) {
	defer err2.Handle(&err, "mailbox fetch")

	url := fmt.Sprintf("%s/msg?did=%s&type=%s", m.baseURL, toDID, msgType)
	req := try.To1(http.NewRequestWithContext(ctx, http.MethodGet, url, nil))

	res := try.To1(m.hc.Do(req))
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agency status %d", res.StatusCode)
	}

	data := try.To1(io.ReadAll(res.Body))
	try.To(json.Unmarshal(data, &msgs))

	glog.V(5).Infof("mailbox fetch %s/%s: %d msgs", toDID, msgType, len(msgs))
	return msgs, nil
}

// TakeThread returns the first waiting message of the type that belongs to
// the thread, or found == false when the counterpart has not answered yet.
func (m *mailbox) TakeThread(ctx context.Context, toDID, msgType, thread string) (msg *boxMsg, found bool, err error) {
	defer err2.Handle(&err, "mailbox take")

	msgs := try.To1(m.Fetch(ctx, toDID, msgType))
	for i := range msgs {
		if msgs[i].Thread == thread {
			return &msgs[i], true, nil
		}
	}
	return nil, false, nil
}
