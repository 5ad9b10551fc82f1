//go:build !unix

package arena

func mapAnon(int) ([]byte, func([]byte) error, error) {
	return nil, nil, ErrMmapUnsupported
}
