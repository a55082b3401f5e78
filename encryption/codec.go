// Package encryption - password-based authenticated encryption codec
package encryption

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"golang.org/x/crypto/chacha20poly1305"
)

// NonceLength byte length of the encryption nonce
const NonceLength = chacha20poly1305.NonceSize

// NonceHexLength character length of the hex encoded nonce prefix within a
// packed ciphertext
const NonceHexLength = NonceLength * 2

// SaltLength byte length of a newly generated record salt
const SaltLength = 16

/*
Codec the system's cryptography codec. It is solely responsible for all
cryptographic operations in the system.

The symmetric key is derived by hashing the caller supplied password material
(password concatenated with the record salt) once with SHA-256. There is no
iterated KDF strengthening; this matches the persisted record format and is a
known limitation of that format.

The packed ciphertext format is a fixed-width hex encoded nonce prefix followed
by the standard base64 encoding of ciphertext plus authentication tag.
*/
type Codec interface {
	/*
		RandomSalt generate a fresh random record salt

			@param ctx context.Context - execution context
			@return hex encoded salt
	*/
	RandomSalt(ctx context.Context) (string, error)

	/*
		Encrypt encrypt a plain text string under password derived key material

		Each call uses a fresh random nonce, so two encryptions of identical plain
		text differ in output.

			@param ctx context.Context - execution context
			@param plainText string - the plain text to encrypt
			@param passwordMaterial string - password concatenated with the record salt
			@return packed ciphertext
	*/
	Encrypt(ctx context.Context, plainText string, passwordMaterial string) (string, error)

	/*
		Decrypt authenticate and decrypt a packed ciphertext

		Authentication failure (i.e. wrong password) is signaled through the
		boolean, not the error. A packed ciphertext without a well-formed nonce
		prefix is a hard error.

			@param ctx context.Context - execution context
			@param packed string - the packed ciphertext
			@param passwordMaterial string - password concatenated with the record salt
			@return the plain text, and whether authentication succeeded
	*/
	Decrypt(ctx context.Context, packed string, passwordMaterial string) (string, bool, error)
}

// codecImpl implements Codec
type codecImpl struct {
	goutils.Component
}

/*
NewCodec define new cryptography codec

	@returns codec instance
*/
func NewCodec() (Codec, error) {
	logTags := log.Fields{"package": "alcove", "module": "encryption", "component": "codec"}

	return &codecImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
	}, nil
}

// deriveKey derive the symmetric key from password material
func deriveKey(passwordMaterial string) []byte {
	key := sha256.Sum256([]byte(passwordMaterial))
	return key[:]
}

/*
RandomSalt generate a fresh random record salt

	@param ctx context.Context - execution context
	@return hex encoded salt
*/
func (c *codecImpl) RandomSalt(_ context.Context) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to read salt bytes from RNG [%w]", err)
	}
	return hex.EncodeToString(salt), nil
}

/*
Encrypt encrypt a plain text string under password derived key material

	@param ctx context.Context - execution context
	@param plainText string - the plain text to encrypt
	@param passwordMaterial string - password concatenated with the record salt
	@return packed ciphertext
*/
func (c *codecImpl) Encrypt(
	_ context.Context, plainText string, passwordMaterial string,
) (string, error) {
	aead, err := chacha20poly1305.New(deriveKey(passwordMaterial))
	if err != nil {
		return "", fmt.Errorf("unable to define AEAD client [%w]", err)
	}

	nonce := make([]byte, NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to read nonce bytes from RNG [%w]", err)
	}

	cipherText := aead.Seal(nil, nonce, []byte(plainText), nil)

	return hex.EncodeToString(nonce) + base64.StdEncoding.EncodeToString(cipherText), nil
}

/*
Decrypt authenticate and decrypt a packed ciphertext

	@param ctx context.Context - execution context
	@param packed string - the packed ciphertext
	@param passwordMaterial string - password concatenated with the record salt
	@return the plain text, and whether authentication succeeded
*/
func (c *codecImpl) Decrypt(
	_ context.Context, packed string, passwordMaterial string,
) (string, bool, error) {
	if len(packed) < NonceHexLength {
		return "", false, fmt.Errorf("packed ciphertext is missing the nonce prefix")
	}

	nonce, err := hex.DecodeString(packed[:NonceHexLength])
	if err != nil {
		return "", false, fmt.Errorf("packed ciphertext nonce prefix is malformed [%w]", err)
	}

	cipherText, err := base64.StdEncoding.DecodeString(packed[NonceHexLength:])
	if err != nil {
		return "", false, fmt.Errorf("packed ciphertext payload is malformed [%w]", err)
	}

	aead, err := chacha20poly1305.New(deriveKey(passwordMaterial))
	if err != nil {
		return "", false, fmt.Errorf("unable to define AEAD client [%w]", err)
	}

	// An authentication failure here almost always means the wrong password.
	// It is the designed mechanism for password verification, so it is soft.
	plainText, err := aead.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return "", false, nil
	}

	return string(plainText), true, nil
}
