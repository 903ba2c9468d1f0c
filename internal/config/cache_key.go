package config

import (
	"fmt"
	"strings"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SubjectScoresKey returns the hash holding the current scores of a subject,
// one field per person ID.
func (r *CacheKeyStruct) SubjectScoresKey(subject string) string {
	return fmt.Sprintf("subject:%s:scores", strings.ToUpper(subject))
}

// SubjectScoresChannel returns the Redis PubSub channel score changes of a
// subject are published on.
func (r *CacheKeyStruct) SubjectScoresChannel(subject string) string {
	return fmt.Sprintf("subject:%s:scores", strings.ToUpper(subject))
}

// BookSnapshotKey returns the key of the last saved snapshot timestamp.
func (r *CacheKeyStruct) BookSnapshotKey() string {
	return "book:snapshot:saved_at"
}

var CacheKey = NewCacheKeyStruct()
