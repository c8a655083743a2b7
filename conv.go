package paa

const (
	maxUint24 = 1<<24 - 1
	maxUint16 = int(^uint16(0))
)

// u16FromInt converts an int to a uint16.
func u16FromInt(n int) (uint16, error) {
	if n < 0 || n > maxUint16 {
		return 0, ErrSizeOverflow
	}

	return uint16(n), nil
}

// u24Check verifies that n fits the 3-byte mipmap length field.
func u24Check(n int) error {
	if n < 0 || n > maxUint24 {
		return ErrSizeOverflow
	}

	return nil
}
