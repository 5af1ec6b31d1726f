package fixbuf

import "bytes"

// Text decodes a zero-padded fixed-width text field: the bytes before the
// first zero, as a string. The algorithm only reads through the view and
// depends on nothing but the view's own length and contents, so the same
// call serves a 20-slot name field and a 40-slot site field. A view with no
// zero byte decodes to its full width.
func Text(v View[byte]) string {
	b := v.Raw()
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
