// Command mpcproxy runs the development MPC proxy.
//
// It serves POST /onboard, POST /encrypt-to-user and the development-only
// POST /dev/handles, which seeds the handle ledger:
//
//	mpcproxy --listen :8080 --chain-id 31337
//	curl -X POST localhost:8080/dev/handles \
//	  -d '{"handle":"42","owner":"0x...","amount":100000}'
//
// Issued keys live in memory unless --keys-dir is given.
package main
