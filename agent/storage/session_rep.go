package storage

import (
	"github.com/findy-network/findy-wrapper-go/dto"
)

// SessionRep tracks which wallet a login session has attached. The background
// reconciliation task reads these to know which wallets to poll outside the
// request/response cycle.
type SessionRep struct {
	SessionID  string
	Owner      string // owner identity, email or org name
	WalletName string
}

func NewSessionRep(d []byte) *SessionRep {
	s := &SessionRep{}
	dto.FromGOB(d, s)
	return s
}

func (s *SessionRep) Data() []byte {
	return dto.ToGOB(s)
}

// AddSessionRep upserts; one row per session id.
func AddSessionRep(s *SessionRep) (err error) {
	return addData([]byte(s.SessionID), s.Data(), bucketSession)
}

func GetSessionRep(sessionID string) (s *SessionRep, found bool, err error) {
	found, err = get([]byte(sessionID), bucketSession, func(d []byte) {
		s = NewSessionRep(d)
	})
	if !found {
		s = nil
	}
	return s, found, err
}

func RmSessionRep(sessionID string) (err error) {
	return rm([]byte(sessionID), bucketSession)
}

func SessionReps() (ss []*SessionRep, err error) {
	values, err := getAll(bucketSession)
	if err != nil {
		return nil, err
	}
	ss = make([]*SessionRep, 0, len(values))
	for _, d := range values {
		ss = append(ss, NewSessionRep(d))
	}
	return ss, nil
}
