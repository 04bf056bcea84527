package sdk

import (
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// Sign asks the host to sign arbitrary bytes with the agent key and returns
// the detached signature. The private key never enters the guest.
func Sign(data []byte) (entities.Signature, error) {
	if len(data) == 0 {
		return nil, &errors.ValidationError{Field: "data", Reason: "must not be empty"}
	}

	out, err := dispatch.CallTyped[entities.SignInput, entities.SignOutput](
		wireformat.TagSign,
		entities.SignInput{Data: data},
	)
	if err != nil {
		return nil, err
	}
	return out.Signature, nil
}

// VerifySignature checks a detached signature against the given signer's
// public key. The verdict is the host's; the guest carries no key material.
func VerifySignature(signer hash.Hash, data []byte, sig entities.Signature) (bool, error) {
	if !signer.IsValid() {
		return false, &errors.ValidationError{Field: "signer", Reason: "malformed hash"}
	}
	if len(data) == 0 {
		return false, &errors.ValidationError{Field: "data", Reason: "must not be empty"}
	}
	if len(sig) == 0 {
		return false, &errors.ValidationError{Field: "signature", Reason: "must not be empty"}
	}

	out, err := dispatch.CallTyped[entities.VerifySignatureInput, entities.VerifySignatureOutput](
		wireformat.TagVerifySignature,
		entities.VerifySignatureInput{Signer: signer, Data: data, Signature: sig},
	)
	if err != nil {
		return false, err
	}
	return out.Valid, nil
}
