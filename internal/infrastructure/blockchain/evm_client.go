package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	dialEVMClient    = ethclient.Dial
	getClientChainID = func(client *ethclient.Client, ctx context.Context) (*big.Int, error) {
		return client.ChainID(ctx)
	}
)

// EVMClient provides read access to the configured EVM chain
type EVMClient struct {
	client  *ethclient.Client
	chainID *big.Int
	rpcURL  string

	// testBlockNumber allows deterministic unit tests without network sockets.
	testBlockNumber func(ctx context.Context) (uint64, error)
}

// NewEVMClient dials the RPC endpoint and resolves its chain ID
func NewEVMClient(rpcURL string) (*EVMClient, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}

	chainID, err := getClientChainID(client, context.Background())
	if err != nil {
		client.Close()
		return nil, err
	}

	return &EVMClient{
		client:  client,
		chainID: chainID,
		rpcURL:  rpcURL,
	}, nil
}

// NewEVMClientWithBlockNumber creates a client that uses an injected block
// number implementation. Intended for unit tests where RPC sockets are
// unavailable.
func NewEVMClientWithBlockNumber(chainID *big.Int, blockNumberFn func(ctx context.Context) (uint64, error)) *EVMClient {
	if chainID == nil {
		chainID = big.NewInt(1)
	}
	return &EVMClient{
		chainID:         chainID,
		testBlockNumber: blockNumberFn,
	}
}

// ChainID returns the chain ID
func (c *EVMClient) ChainID() *big.Int {
	return c.chainID
}

// RPCURL returns the endpoint this client is connected to
func (c *EVMClient) RPCURL() string {
	return c.rpcURL
}

// BlockNumber gets the latest block number
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	if c.testBlockNumber != nil {
		return c.testBlockNumber(ctx)
	}
	return c.client.BlockNumber(ctx)
}

// Close closes the client connection
func (c *EVMClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
