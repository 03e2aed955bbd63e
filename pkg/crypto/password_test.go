package crypto

import (
	"errors"
	"io"
	"math/big"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, CheckPassword("s3cret-pass", hash))
	require.False(t, CheckPassword("wrong", hash))
}

func TestHashPasswordFailure(t *testing.T) {
	orig := bcryptGenerateFromPassword
	t.Cleanup(func() { bcryptGenerateFromPassword = orig })
	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	_, err := HashPassword("x")
	require.Error(t, err)
}

func TestGenerateOTP(t *testing.T) {
	sixDigits := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Regexp(t, sixDigits, code)
	}
}

func TestGenerateOTPFailure(t *testing.T) {
	orig := randomInt
	t.Cleanup(func() { randomInt = orig })
	randomInt = func(_ io.Reader, _ *big.Int) (*big.Int, error) {
		return nil, errors.New("entropy exhausted")
	}

	_, err := GenerateOTP()
	require.Error(t, err)
}
