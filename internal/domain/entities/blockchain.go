package entities

import "encoding/json"

// ChainStatus reports connectivity to the configured EVM node
type ChainStatus struct {
	Connected       bool   `json:"connected"`
	ChainID         string `json:"chainId,omitempty"`
	BlockNumber     uint64 `json:"blockNumber,omitempty"`
	RPCURL          string `json:"rpcUrl"`
	ContractAddress string `json:"contractAddress,omitempty"`
}

// ContractInfo exposes the deployed contract descriptor to clients
type ContractInfo struct {
	Address string          `json:"address"`
	ABI     json.RawMessage `json:"abi"`
	RPCURL  string          `json:"rpcUrl"`
}

// AnchorResult is the outcome of a direct pin-and-anchor upload
type AnchorResult struct {
	CID            string `json:"ipfsHash"`
	IPFSGatewayURL string `json:"ipfsUrl"`
	TxHash         string `json:"txHash,omitempty"`
	FileName       string `json:"fileName"`
	Size           int64  `json:"size"`
	ChainSkipped   bool   `json:"chainSkipped"`
}
