// Package public sends and mints the clear side of a token pair.
package public
