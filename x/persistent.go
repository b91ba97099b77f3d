package x

// Validater is implemented by every stored model: escrows, mints, token
// accounts, vaults and configurations. orm buckets call it before each
// save.
type Validater interface {
	Validate() error
}
