package ports

// PasswordHasher one-way transforms plaintext passwords. Hash is salted:
// repeated calls on the same input produce different outputs, but Compare
// succeeds for any of them.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(hash, plaintext string) error
}
