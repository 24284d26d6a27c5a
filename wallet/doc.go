// Package wallet is the ceremony's entropy and key source.
//
// Master keys are BIP32 extended private keys created from system randomness
// mixed with optional operator entropy. User keys are hardened children of the
// master at the user's ordinal; account keys are hardened children of a user
// key at the account ordinal.
//
// Account keys are exported in one of two formats:
//
//   - bitcoin: WIF private key (compressed, mainnet) and P2PKH address
//   - ethereum: hex private key and EIP-55 checksummed address
package wallet
