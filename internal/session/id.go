package session

import (
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ClientPrefix = "web"
	ServerPrefix = "session"
	fragmentLen  = 9
)

// NewID returns "<prefix>_<9 base-36 chars>_<unix millis>". It is unique
// enough to tell browser tabs apart, not a secret.
func NewID(prefix string) string {
	return prefix + "_" + fragment() + "_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// NewClientID is the id a front-end generates on load and on chat clear.
func NewClientID() string {
	return NewID(ClientPrefix)
}

func fragment() string {
	id := uuid.New()
	s := new(big.Int).SetBytes(id[:]).Text(36)
	if len(s) < fragmentLen {
		s = strings.Repeat("0", fragmentLen-len(s)) + s
	}
	return s[len(s)-fragmentLen:]
}
