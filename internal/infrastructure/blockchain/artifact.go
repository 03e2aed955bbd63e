package blockchain

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ContractArtifact is the deployed contract descriptor written by the deploy
// script: the contract address plus its ABI.
type ContractArtifact struct {
	Address string          `json:"address"`
	ABI     json.RawMessage `json:"abi"`
}

// LoadArtifact reads a contract artifact JSON from disk. Read at call time so
// redeployments are picked up without a restart.
func LoadArtifact(path string) (*ContractArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract artifact: %w", err)
	}

	var artifact ContractArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse contract artifact: %w", err)
	}
	if len(artifact.ABI) == 0 {
		return nil, fmt.Errorf("contract artifact %s has no abi", path)
	}
	return &artifact, nil
}

// ParsedABI parses the artifact's ABI
func (a *ContractArtifact) ParsedABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(string(a.ABI)))
}
