package auth

import (
	"strings"
	"testing"
	"time"

	"flock/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_token_secret_key_very_long_for_testing"

func frozenClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	issuedAt := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	svc := newJWTService(testSecret, frozenClock(issuedAt))

	subjectID := uuid.New()
	token, err := svc.Issue(subjectID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	decoded, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, subjectID, decoded)
}

func TestJWTService_Deterministic(t *testing.T) {
	issuedAt := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	subjectID := uuid.New()

	// Same secret, subject, and frozen clock: the signature verifies and
	// decodes to the same subject id.
	first, err := newJWTService(testSecret, frozenClock(issuedAt)).Issue(subjectID)
	require.NoError(t, err)
	second, err := newJWTService(testSecret, frozenClock(issuedAt)).Issue(subjectID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestJWTService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	issuer := newJWTService(testSecret, frozenClock(issuedAt))

	subjectID := uuid.New()
	token, err := issuer.Issue(subjectID)
	require.NoError(t, err)

	// Valid 29 days after issuance.
	at29 := newJWTService(testSecret, frozenClock(issuedAt.Add(29*24*time.Hour)))
	decoded, err := at29.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, subjectID, decoded)

	// Expired 31 days after issuance.
	at31 := newJWTService(testSecret, frozenClock(issuedAt.Add(31*24*time.Hour)))
	_, err = at31.Validate(token)
	assert.Error(t, err)
}

func TestJWTService_TamperedSignature(t *testing.T) {
	svc := newJWTService(testSecret, time.Now)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	// Flip one character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Validate(tampered)
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := newJWTService(testSecret, time.Now).Issue(uuid.New())
	require.NoError(t, err)

	_, err = newJWTService("a_different_secret_entirely", time.Now).Validate(token)
	assert.Error(t, err)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := newJWTService(testSecret, time.Now)

	_, err := svc.Validate("clearly-not-a-jwt-token")
	assert.Error(t, err)

	_, err = svc.Validate("")
	assert.Error(t, err)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}
