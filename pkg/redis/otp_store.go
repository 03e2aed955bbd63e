package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrOTPNotFound is returned when no code is stored for the user or it expired
var ErrOTPNotFound = errors.New("otp not found or expired")

// DefaultOTPTTL is how long a one-time code stays valid
const DefaultOTPTTL = 5 * time.Minute

// OTPStore keeps short-lived one-time codes keyed by user, with TTL.
// It replaces stashing codes inside mutable profile fields.
type OTPStore struct {
	ttl time.Duration
}

var (
	setOTPValue = Set
	getOTPValue = Get
	delOTPValue = Del
)

// NewOTPStore creates a new OTP store
func NewOTPStore(ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &OTPStore{ttl: ttl}
}

// Put stores a code for the given user, replacing any previous one
func (s *OTPStore) Put(ctx context.Context, userID, code string) error {
	return setOTPValue(ctx, "kyc_otp:"+userID, code, s.ttl)
}

// Verify checks the supplied code against the stored one and consumes it on match
func (s *OTPStore) Verify(ctx context.Context, userID, code string) error {
	stored, err := getOTPValue(ctx, "kyc_otp:"+userID)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrOTPNotFound
		}
		return err
	}
	if stored != code {
		return ErrOTPNotFound
	}
	return delOTPValue(ctx, "kyc_otp:"+userID)
}

// ReviewLock is a best-effort per-contribution lock guarding concurrent reviews.
// Held for the duration of the accept pipeline, released explicitly.
type ReviewLock struct {
	ttl time.Duration
}

// NewReviewLock creates a review lock helper
func NewReviewLock(ttl time.Duration) *ReviewLock {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &ReviewLock{ttl: ttl}
}

var setNXValue = SetNX

// Acquire takes the lock for a contribution; returns false if already held
func (l *ReviewLock) Acquire(ctx context.Context, contributionID string) (bool, error) {
	return setNXValue(ctx, "review_lock:"+contributionID, "1", l.ttl)
}

// Release frees the lock
func (l *ReviewLock) Release(ctx context.Context, contributionID string) error {
	return delOTPValue(ctx, "review_lock:"+contributionID)
}
