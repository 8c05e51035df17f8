package obu

import "github.com/iamf-tools/go-iamf/ierrors"

func newUnexpectedSizeError(obuName string, got, want int) error {
	return ierrors.NewFailedPrecondition("obu: %s payload size %d, want %d", obuName, got, want)
}
