package ethereum

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/xerrors"
)

var (
	ErrSignatureLength = xerrors.Errorf("signature must be %d bytes long", crypto.SignatureLength)
	ErrRecoveryID      = xerrors.New("invalid signature recovery id (V is not 27 or 28)")
)

// GenerateKey returns a fresh secp256k1 key and its public half.
func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	return key, &key.PublicKey, nil
}

// AddressOf is the lowercase hex account address controlled by key.
func AddressOf(key *ecdsa.PublicKey) string {
	return strings.ToLower(crypto.PubkeyToAddress(*key).Hex())
}

// SignMessage produces the personal_sign signature a wallet would return for
// message, V encoded as 27/28.
func SignMessage(key *ecdsa.PrivateKey, message []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), key)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// RecoverMsgSigner returns the lowercase address that personal-signed message.
func RecoverMsgSigner(message []byte, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", err
	}
	addr, err := ecRecover(accounts.TextHash(message), sig)
	if err != nil {
		return "", err
	}
	return strings.ToLower(addr.Hex()), nil
}

// ValidateMsgSignature reports whether signer produced signature over the
// personal-sign hash of message.
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	recovered, err := RecoverMsgSigner(message, signature)
	if err != nil {
		return false, err
	}
	return recovered == strings.ToLower(common.HexToAddress(signer).Hex()), nil
}

// ecRecover accepts both V encodings wallets emit (0/1 and 27/28).
func ecRecover(hash []byte, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrSignatureLength
	}
	sig = append([]byte{}, sig...)
	if sig[crypto.RecoveryIDOffset] < 27 {
		sig[crypto.RecoveryIDOffset] += 27
	}
	if v := sig[crypto.RecoveryIDOffset]; v != 27 && v != 28 {
		return common.Address{}, ErrRecoveryID
	}
	sig[crypto.RecoveryIDOffset] -= 27

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
