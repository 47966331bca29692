package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

var fallbackSeq atomic.Uint64

// GenerateID создает токен сессии для клиента без своего токена.
// Если системный генератор недоступен, токен строится из времени и счетчика.
func GenerateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "s" + strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatUint(fallbackSeq.Add(1), 36)
	}
	return "s" + hex.EncodeToString(b)
}
