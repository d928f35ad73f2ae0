// Package chain reads and writes the public and private token contracts
// through go-ethereum's ethclient.
//
// Reads use eth_call against the latest block. Writes are built here, signed
// by the wallet's domain.Signer and sent with eth_sendRawTransaction, then
// followed with WaitMined. Contract calls are encoded with accounts/abi,
// including the tuple in transfer(address,(uint256,bytes)).
package chain
