// Package apiconnect holds the Connect clients and handlers of the chore
// tracker services. Every client and handler speaks JSON through api.Codec.
package apiconnect
