// Package codec implements the OpenSSL-envelope AES scheme the mobile
// clients use for medical documents. The format is base64("Salted__" ||
// 8-byte salt || AES-256-CBC body) with key and IV derived from the
// passphrase via the OpenSSL EVP_BytesToKey schedule over MD5, which is
// what CryptoJS.AES.encrypt(plaintext, passphrase) produces.
//
// The passphrase is the document owner's RUT joined with a fixed version
// tag, so possession of the ciphertext plus knowledge of the owner is
// enough to decrypt. This is concealment-at-rest against casual database
// reads, not real cryptographic protection; the envelope is kept for
// compatibility with documents already uploaded by the existing clients.
package codec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"net/url"

	dErrors "rutasegura/pkg/domain-errors"
)

// PassphraseSalt is the fixed version tag appended to the owner RUT.
const PassphraseSalt = "RUTA_SEGURA_V1"

const (
	opensslMagic = "Salted__"
	saltLen      = 8
	keyLen       = 32
	ivLen        = aes.BlockSize
)

// Passphrase builds the document passphrase for an owner RUT.
func Passphrase(ownerRUT string) string {
	return ownerRUT + "-" + PassphraseSalt
}

// evpBytesToKey derives key material by chaining MD5 over the passphrase
// and salt, matching OpenSSL's EVP_BytesToKey with one round.
func evpBytesToKey(passphrase string, salt []byte) (key, iv []byte) {
	var material []byte
	var digest []byte
	for len(material) < keyLen+ivLen {
		h := md5.New()
		h.Write(digest)
		h.Write([]byte(passphrase))
		h.Write(salt)
		digest = h.Sum(nil)
		material = append(material, digest...)
	}
	return material[:keyLen], material[keyLen : keyLen+ivLen]
}

// Decrypt opens a CryptoJS/OpenSSL envelope with the owner's passphrase.
// Any structural defect, bad padding, or empty plaintext is reported as
// CodeDecryptionFailed: a wrong passphrase is indistinguishable from a
// corrupt document under this scheme.
func Decrypt(cipherText, ownerRUT string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryptionFailed, "decoding envelope")
	}
	if len(raw) < len(opensslMagic)+saltLen || string(raw[:len(opensslMagic)]) != opensslMagic {
		return nil, dErrors.New(dErrors.CodeDecryptionFailed, "missing envelope header")
	}
	salt := raw[len(opensslMagic) : len(opensslMagic)+saltLen]
	body := raw[len(opensslMagic)+saltLen:]
	if len(body) == 0 || len(body)%aes.BlockSize != 0 {
		return nil, dErrors.New(dErrors.CodeDecryptionFailed, "ciphertext is not block aligned")
	}

	key, iv := evpBytesToKey(Passphrase(ownerRUT), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDecryptionFailed, "initializing cipher")
	}
	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)

	plain, err = pkcs7Unpad(plain)
	if err != nil || len(plain) == 0 {
		return nil, dErrors.New(dErrors.CodeDecryptionFailed, "document could not be decrypted")
	}
	return plain, nil
}

// Encrypt seals plaintext in the same envelope the clients produce. Used
// by tests and by the upload path when seeding fixtures.
func Encrypt(plain []byte, ownerRUT string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "generating salt")
	}
	key, iv := evpBytesToKey(Passphrase(ownerRUT), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "initializing cipher")
	}

	padded := pkcs7Pad(plain)
	body := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(body, padded)

	envelope := make([]byte, 0, len(opensslMagic)+saltLen+len(body))
	envelope = append(envelope, opensslMagic...)
	envelope = append(envelope, salt...)
	envelope = append(envelope, body...)
	return base64.StdEncoding.EncodeToString(envelope), nil
}

// DataURI renders a decrypted document body as a PDF data URI. The
// plaintext inside the envelope is already base64 text of the PDF, put
// there by the upload flow, so the body is spliced in verbatim with only
// percent-escaping; re-encoding it would double-encode every stored
// document.
func DataURI(body []byte) string {
	return "data:application/pdf;base64," + url.QueryEscape(string(body))
}

func pkcs7Pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, dErrors.New(dErrors.CodeDecryptionFailed, "empty plaintext")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, dErrors.New(dErrors.CodeDecryptionFailed, "invalid padding")
	}
	for _, pad := range b[len(b)-n:] {
		if int(pad) != n {
			return nil, dErrors.New(dErrors.CodeDecryptionFailed, "invalid padding")
		}
	}
	return b[:len(b)-n], nil
}
