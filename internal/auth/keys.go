package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/youmark/pkcs8"
)

const rsaKeyBits = 2048

const (
	pemPrivateKey          = "PRIVATE KEY"
	pemEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
	pemRSAPrivateKey       = "RSA PRIVATE KEY"
	pemPublicKey           = "PUBLIC KEY"
)

// KeyManager owns the RSA keypair clients encrypt their credentials against.
// The private half is only ever used for Decrypt.
type KeyManager struct {
	private   *rsa.PrivateKey
	publicPEM string
}

func NewKeyManager(private *rsa.PrivateKey) (*KeyManager, error) {
	der, err := x509.MarshalPKIXPublicKey(&private.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: pemPublicKey, Bytes: der})

	return &KeyManager{
		private:   private,
		publicPEM: strings.TrimSpace(string(publicPEM)),
	}, nil
}

// LoadOrCreateKeyManager loads the private key at privatePath, generating and
// persisting a new pair when the file does not exist. A missing public key
// file is rewritten from the private key. With a non-empty passphrase the
// private key is stored as encrypted PKCS#8.
func LoadOrCreateKeyManager(privatePath, publicPath, passphrase string) (*KeyManager, error) {
	privateKey, err := readPrivateKey(privatePath, passphrase)
	generated := false
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		privateKey, err = rsa.GenerateKey(rand.Reader, rsaKeyBits)
		if err != nil {
			return nil, fmt.Errorf("generate rsa key: %w", err)
		}
		if err := writePrivateKey(privatePath, privateKey, passphrase); err != nil {
			return nil, err
		}
		generated = true
	default:
		return nil, err
	}

	km, err := NewKeyManager(privateKey)
	if err != nil {
		return nil, err
	}

	if !generated {
		if _, err := os.Stat(publicPath); err == nil {
			return km, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := writeFile(publicPath, []byte(km.publicPEM+"\n"), 0o644); err != nil {
		return nil, err
	}

	return km, nil
}

func (km *KeyManager) PublicKeyPEM() string {
	return km.publicPEM
}

// Decrypt decodes a base64 RSA ciphertext. Browser clients (JSEncrypt) use
// PKCS#1 v1.5 padding; OAEP with SHA-256 is accepted as well. A v1.5 result
// that is not JSON is treated as a padding false positive and OAEP is tried.
func (km *KeyManager) Decrypt(payload string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrMalformedPayload, err)
	}

	v15, v15Err := rsa.DecryptPKCS1v15(nil, km.private, ciphertext)
	if v15Err == nil && json.Valid(v15) {
		return v15, nil
	}

	oaep, err := rsa.DecryptOAEP(sha256.New(), nil, km.private, ciphertext, nil)
	if err == nil {
		return oaep, nil
	}

	if v15Err == nil {
		return v15, nil
	}

	return nil, fmt.Errorf("%w: unable to decrypt payload", ErrMalformedPayload)
}

func readPrivateKey(path, passphrase string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%s: no PEM block found", path)
	}

	switch block.Type {
	case pemEncryptedPrivateKey:
		if passphrase == "" {
			return nil, fmt.Errorf("%s: private key is encrypted but no passphrase is configured", path)
		}
		key, err := pkcs8.ParsePKCS8PrivateKeyRSA(block.Bytes, []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return key, nil
	case pemPrivateKey:
		key, err := pkcs8.ParsePKCS8PrivateKeyRSA(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return key, nil
	case pemRSAPrivateKey:
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("%s: unsupported PEM block %q", path, block.Type)
	}
}

func writePrivateKey(path string, key *rsa.PrivateKey, passphrase string) error {
	blockType := pemPrivateKey
	var password []byte
	var opts *pkcs8.Opts
	if passphrase != "" {
		blockType = pemEncryptedPrivateKey
		password = []byte(passphrase)
		opts = &pkcs8.Opts{
			Cipher: pkcs8.AES256CBC,
			KDFOpts: pkcs8.PBKDF2Opts{
				SaltSize:       16,
				IterationCount: 100000,
				HMACHash:       crypto.SHA256,
			},
		}
	}

	der, err := pkcs8.MarshalPrivateKey(key, password, opts)
	if err != nil {
		return fmt.Errorf("marshal private key: %w", err)
	}

	return writeFile(path, pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}), 0o600)
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}
