package usecases

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
	"glow-contrib.backend/internal/config"
	"glow-contrib.backend/internal/domain/entities"
	domainerrors "glow-contrib.backend/internal/domain/errors"
	"glow-contrib.backend/internal/infrastructure/blockchain"
	"glow-contrib.backend/pkg/logger"
)

// Fixed gas budget per contract method. The node on a local devnet does not
// estimate reliably for these calls.
const (
	saveHashGasLimit = 300000
	transferGasLimit = 200000
)

// EIP-1559 fee caps used for every signed transaction
var (
	maxFeePerGas         = big.NewInt(2_000_000_000) // 2 gwei
	maxPriorityFeePerGas = big.NewInt(1_000_000_000) // 1 gwei
)

// executeChainTx dials the RPC endpoint, signs a contract call with the
// given key and submits it. Extracted so tests can stub the network.
var executeChainTx = func(ctx context.Context, rpcURL, privateKeyHex, contractAddr string, contractABI abi.ABI, gasLimit uint64, method string, args ...interface{}) (string, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return "", fmt.Errorf("dial rpc: %w", err)
	}
	defer client.Close()

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("get chain id: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return "", fmt.Errorf("create transactor: %w", err)
	}
	auth.Context = ctx
	auth.GasLimit = gasLimit
	auth.GasFeeCap = maxFeePerGas
	auth.GasTipCap = maxPriorityFeePerGas

	contract := bind.NewBoundContract(common.HexToAddress(contractAddr), contractABI, client, client, client)
	tx, err := contract.Transact(auth, method, args...)
	if err != nil {
		return "", fmt.Errorf("send %s tx: %w", method, err)
	}
	return tx.Hash().Hex(), nil
}

var newEVMClient = blockchain.NewEVMClient

// ChainUsecase signs contract transactions and reports chain status. All
// transactions are signed with the single deployer key, so submission is
// serialized to keep nonces in order.
type ChainUsecase struct {
	cfg      config.BlockchainConfig
	signerMu sync.Mutex
}

// NewChainUsecase creates a chain usecase
func NewChainUsecase(cfg config.BlockchainConfig) *ChainUsecase {
	return &ChainUsecase{cfg: cfg}
}

// Configured reports whether a signer key is available
func (u *ChainUsecase) Configured() bool {
	return u.cfg.DeployerPrivateKey != ""
}

// SignerAddress derives the address of the configured deployer key
func (u *ChainUsecase) SignerAddress() (string, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(u.cfg.DeployerPrivateKey, "0x"))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

// loadContract resolves the deployed contract's address and parsed ABI. The
// artifact is read at call time so a redeploy is picked up without a restart.
func (u *ChainUsecase) loadContract() (string, abi.ABI, error) {
	artifact, err := blockchain.LoadArtifact(u.cfg.ArtifactPath)
	if err != nil {
		return "", abi.ABI{}, err
	}
	parsed, err := artifact.ParsedABI()
	if err != nil {
		return "", abi.ABI{}, err
	}
	addr := u.cfg.ContractAddress
	if addr == "" {
		addr = artifact.Address
	}
	if addr == "" {
		return "", abi.ABI{}, fmt.Errorf("no contract address configured or in artifact")
	}
	return addr, parsed, nil
}

// AppendHash records an IPFS CID on chain via the contract's saveHash method
func (u *ChainUsecase) AppendHash(ctx context.Context, cid string) (string, error) {
	if !u.Configured() {
		return "", fmt.Errorf("no deployer key configured")
	}
	addr, contractABI, err := u.loadContract()
	if err != nil {
		return "", err
	}

	u.signerMu.Lock()
	defer u.signerMu.Unlock()

	txHash, err := executeChainTx(ctx, u.cfg.RPCURL, u.cfg.DeployerPrivateKey, addr, contractABI, saveHashGasLimit, "saveHash", cid)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domainerrors.ErrChainRPCFailed, err)
	}
	logger.Info(ctx, "anchored hash on chain",
		zap.String("cid", cid),
		zap.String("tx_hash", txHash),
	)
	return txHash, nil
}

// TransferTokens sends a token transfer from the deployer account and returns
// the transaction hash along with the signer address.
func (u *ChainUsecase) TransferTokens(ctx context.Context, amountWei *big.Int) (string, string, error) {
	if !u.Configured() {
		return "", "", fmt.Errorf("no deployer key configured")
	}
	sender, err := u.SignerAddress()
	if err != nil {
		return "", "", err
	}
	addr, contractABI, err := u.loadContract()
	if err != nil {
		return "", "", err
	}

	u.signerMu.Lock()
	defer u.signerMu.Unlock()

	txHash, err := executeChainTx(ctx, u.cfg.RPCURL, u.cfg.DeployerPrivateKey, addr, contractABI, transferGasLimit, "transfer", common.HexToAddress(sender), amountWei)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", domainerrors.ErrChainRPCFailed, err)
	}
	logger.Info(ctx, "token transfer sent",
		zap.String("tx_hash", txHash),
		zap.String("amount_wei", amountWei.String()),
	)
	return txHash, sender, nil
}

// Status probes the RPC endpoint and reports chain connectivity
func (u *ChainUsecase) Status(ctx context.Context) (*entities.ChainStatus, error) {
	client, err := newEVMClient(u.cfg.RPCURL)
	if err != nil {
		return &entities.ChainStatus{Connected: false, RPCURL: u.cfg.RPCURL},
			domainerrors.ServiceUnavailable("blockchain node unreachable", err)
	}
	defer client.Close()

	blockNumber, err := client.BlockNumber(ctx)
	if err != nil {
		return &entities.ChainStatus{Connected: false, RPCURL: u.cfg.RPCURL},
			domainerrors.ServiceUnavailable("blockchain node unreachable", err)
	}

	return &entities.ChainStatus{
		Connected:       true,
		ChainID:         strconv.FormatInt(client.ChainID().Int64(), 10),
		BlockNumber:     blockNumber,
		RPCURL:          u.cfg.RPCURL,
		ContractAddress: u.cfg.ContractAddress,
	}, nil
}

// ContractInfo returns the deployed contract's address and ABI
func (u *ChainUsecase) ContractInfo() (*entities.ContractInfo, error) {
	artifact, err := blockchain.LoadArtifact(u.cfg.ArtifactPath)
	if err != nil {
		return nil, domainerrors.NotFound("contract artifact not available")
	}
	addr := u.cfg.ContractAddress
	if addr == "" {
		addr = artifact.Address
	}
	return &entities.ContractInfo{
		Address: addr,
		ABI:     artifact.ABI,
		RPCURL:  u.cfg.RPCURL,
	}, nil
}
