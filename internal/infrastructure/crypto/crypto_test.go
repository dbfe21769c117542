package crypto

import (
	"strings"
	"testing"
)

const testKey = "01234567890123456789012345678901" // 32 bytes for AES-256

func TestNewEncryptor_InvalidKeyLength(t *testing.T) {
	for _, key := range []string{"", "too-short"} {
		if _, err := NewEncryptor(key); err != ErrInvalidKey {
			t.Errorf("NewEncryptor(%q) error = %v, want %v", key, err, ErrInvalidKey)
		}
	}
}

func TestNewEncryptorFromPassphrase(t *testing.T) {
	enc, err := NewEncryptorFromPassphrase("hunter2", "dashboard-salt")
	if err != nil {
		t.Fatalf("NewEncryptorFromPassphrase() failed: %v", err)
	}

	ciphertext, err := enc.Encrypt("raw sms body")
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}

	// Same passphrase and salt must derive the same key.
	enc2, _ := NewEncryptorFromPassphrase("hunter2", "dashboard-salt")
	got, err := enc2.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() failed: %v", err)
	}
	if got != "raw sms body" {
		t.Errorf("Decrypt() = %q, want original plaintext", got)
	}
}

func TestNewEncryptorFromPassphrase_MissingInputs(t *testing.T) {
	if _, err := NewEncryptorFromPassphrase("", "salt"); err != ErrInvalidKey {
		t.Errorf("empty passphrase: error = %v, want %v", err, ErrInvalidKey)
	}
	if _, err := NewEncryptorFromPassphrase("pass", ""); err != ErrInvalidKey {
		t.Errorf("empty salt: error = %v, want %v", err, ErrInvalidKey)
	}
}

func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	enc, _ := NewEncryptor(testKey)

	plaintext := "Rs.500 debited from A/c XX1234"
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	if ciphertext == plaintext {
		t.Error("Encrypt() returned plaintext")
	}

	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() failed: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("Decrypt() = %q, want %q", decrypted, plaintext)
	}
}

func TestEncrypt_EmptyString(t *testing.T) {
	enc, _ := NewEncryptor(testKey)

	ciphertext, err := enc.Encrypt("")
	if err != nil || ciphertext != "" {
		t.Errorf("Encrypt(\"\") = %q, %v; want empty passthrough", ciphertext, err)
	}

	plaintext, err := enc.Decrypt("")
	if err != nil || plaintext != "" {
		t.Errorf("Decrypt(\"\") = %q, %v; want empty passthrough", plaintext, err)
	}
}

func TestEncrypt_DifferentCiphertexts(t *testing.T) {
	enc, _ := NewEncryptor(testKey)

	c1, _ := enc.Encrypt("same text")
	c2, _ := enc.Encrypt("same text")
	if c1 == c2 {
		t.Error("Encrypt() produced identical ciphertexts for same plaintext (nonce should differ)")
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	enc, _ := NewEncryptor(testKey)

	ciphertext, _ := enc.Encrypt("secret data")
	tampered := ciphertext[:len(ciphertext)-2] + "XX"
	if _, err := enc.Decrypt(tampered); err == nil {
		t.Error("Decrypt() accepted tampered ciphertext")
	}
}

func TestDecrypt_InvalidInput(t *testing.T) {
	enc, _ := NewEncryptor(testKey)

	if _, err := enc.Decrypt("not-valid-base64!!!"); err == nil {
		t.Error("Decrypt() accepted invalid base64")
	}
	if _, err := enc.Decrypt("YQ=="); err == nil {
		t.Error("Decrypt() accepted ciphertext shorter than nonce")
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	enc1, _ := NewEncryptor(testKey)
	enc2, _ := NewEncryptor("98765432109876543210987654321098")

	ciphertext, _ := enc1.Encrypt("encrypted with key1")
	if _, err := enc2.Decrypt(ciphertext); err == nil {
		t.Error("Decrypt() succeeded with wrong key")
	}
}

func TestEncryptDecrypt_LongUnicodeContent(t *testing.T) {
	enc, _ := NewEncryptor(testKey)

	plaintext := strings.Repeat("₹1,500.00 café ☕ ", 500)
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt() failed: %v", err)
	}
	if decrypted != plaintext {
		t.Error("long unicode roundtrip failed")
	}
}
