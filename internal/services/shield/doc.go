// Package shield moves public ERC-20 balance into the private token.
package shield
