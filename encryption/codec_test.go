package encryption_test

import (
	"context"
	"testing"

	"github.com/alwitt/alcove/encryption"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestCodecRoundTrip verifies encrypt / decrypt round trips and the packed
// ciphertext format.
func TestCodecRoundTrip(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut, err := encryption.NewCodec()
	assert.Nil(err)

	salt, err := uut.RandomSalt(utCtx)
	assert.Nil(err)
	assert.Len(salt, encryption.SaltLength*2)

	// -------------------------------------------------------------------------
	// 1 – Round trip with the correct password material
	plainText := uuid.NewString()
	material := "correct horse" + salt
	packed, err := uut.Encrypt(utCtx, plainText, material)
	assert.Nil(err)
	assert.Greater(len(packed), encryption.NonceHexLength)

	recovered, authenticated, err := uut.Decrypt(utCtx, packed, material)
	assert.Nil(err)
	assert.True(authenticated)
	assert.Equal(plainText, recovered)

	// 2 – Wrong password material is an authentication failure, not an error
	recovered, authenticated, err = uut.Decrypt(utCtx, packed, "wrong"+salt)
	assert.Nil(err)
	assert.False(authenticated)
	assert.Empty(recovered)

	// 3 – Same plain text encrypted twice produces different output
	packedAgain, err := uut.Encrypt(utCtx, plainText, material)
	assert.Nil(err)
	assert.NotEqual(packed, packedAgain)

	// 4 – A tampered ciphertext fails authentication
	tampered := packed[:encryption.NonceHexLength] + packedAgain[encryption.NonceHexLength:]
	_, authenticated, err = uut.Decrypt(utCtx, packed[:len(packed)-4]+"AAA=", material)
	assert.Nil(err)
	assert.False(authenticated)
	_, authenticated, err = uut.Decrypt(utCtx, tampered, material)
	assert.Nil(err)
	// The nonce of one message with the payload of another must not verify
	assert.False(authenticated)
}

// TestCodecMalformedInputs verifies structurally invalid packed ciphertexts
// are hard errors rather than authentication failures.
func TestCodecMalformedInputs(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut, err := encryption.NewCodec()
	assert.Nil(err)

	// 1 – Too short to hold a nonce prefix
	_, _, err = uut.Decrypt(utCtx, "deadbeef", "pw")
	assert.Error(err)

	// 2 – Nonce prefix is not hex
	_, _, err = uut.Decrypt(utCtx, "zzzzzzzzzzzzzzzzzzzzzzzzAAAA", "pw")
	assert.Error(err)

	// 3 – Payload is not base64
	_, _, err = uut.Decrypt(utCtx, "000102030405060708090a0b!!!not-base64!!!", "pw")
	assert.Error(err)
}
