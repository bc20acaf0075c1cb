package client

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"quantora_agent/internal/app/port"
	restclient "quantora_agent/internal/client"
	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

const latestBlockTag = "latest"

// batchCaller is the part of *rpc.Client used by AlchemyClient.
type batchCaller interface {
	BatchCallContext(ctx context.Context, b []rpc.BatchElem) error
}

// AlchemyClient implements port.BalanceFetcher for EVM chains served over Alchemy JSON-RPC.
type AlchemyClient struct {
	rpcClient      batchCaller
	limiter        *restclient.Limiter
	rpcCallTimeout time.Duration
}

// NewAlchemyClient dials the Alchemy endpoint for the given base URL and API key.
func NewAlchemyClient(baseURL, apiKey string, limiter *restclient.Limiter, connectionTimeout, rpcCallTimeout time.Duration) (*AlchemyClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("alchemy api key is not configured")
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/" + apiKey

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to alchemy RPC: %w", err)
	}
	return newAlchemyClient(rpcClient, limiter, rpcCallTimeout), nil
}

func newAlchemyClient(rpcClient batchCaller, limiter *restclient.Limiter, rpcCallTimeout time.Duration) *AlchemyClient {
	return &AlchemyClient{rpcClient: rpcClient, limiter: limiter, rpcCallTimeout: rpcCallTimeout}
}

// GetBalances fetches native balances using one JSON-RPC batch request.
// Per-item failures are reported in the results; the error covers the batch transport only.
func (c *AlchemyClient) GetBalances(ctx context.Context, chainID string, requests []entity.BalanceRequestItem) ([]entity.BalanceResultItem, error) {
	if len(requests) == 0 {
		return []entity.BalanceResultItem{}, nil
	}

	batchElems := make([]rpc.BatchElem, len(requests))
	results := make([]entity.BalanceResultItem, len(requests))

	for i, reqItem := range requests {
		id := reqItem.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		blockTag := reqItem.BlockTag
		if blockTag == "" {
			blockTag = latestBlockTag
		}
		results[i] = entity.BalanceResultItem{
			RequestID:     id,
			WalletAddress: reqItem.WalletAddress,
			ChainID:       chainID,
		}
		// Адрес передается как есть: валидацию выполняет провайдер
		batchElems[i] = rpc.BatchElem{
			Method: "eth_getBalance",
			Args:   []interface{}{reqItem.WalletAddress, blockTag},
			Result: new(*hexutil.Big),
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return results, fmt.Errorf("alchemy rate limiter: %w", err)
	}

	rpcCallCtx := ctx
	if c.rpcCallTimeout > 0 {
		var cancel context.CancelFunc
		rpcCallCtx, cancel = context.WithTimeout(ctx, c.rpcCallTimeout)
		defer cancel()
	}

	if err := c.rpcClient.BatchCallContext(rpcCallCtx, batchElems); err != nil {
		return results, fmt.Errorf("RPC batch call failed: %w", err)
	}

	for i, elem := range batchElems {
		if elem.Error != nil {
			results[i].Error = fmt.Errorf("eth_getBalance failed for wallet %s: %w", requests[i].WalletAddress, elem.Error)
			continue
		}
		if result, ok := elem.Result.(**hexutil.Big); ok && result != nil && *result != nil {
			results[i].Balance = new(big.Int).Set((*big.Int)(*result))
		} else {
			results[i].Error = fmt.Errorf("failed to decode native balance for wallet %s: unexpected type or nil result", requests[i].WalletAddress)
		}
	}
	return results, nil
}

// FetchNativeBalance implements port.BalanceFetcher.
func (c *AlchemyClient) FetchNativeBalance(ctx context.Context, walletAddress string, chain entity.ChainDescriptor) (*entity.NativeBalance, error) {
	results, err := c.GetBalances(ctx, chain.ID, []entity.BalanceRequestItem{{ID: "1", WalletAddress: walletAddress}})
	if err != nil {
		return nil, err
	}
	if results[0].Error != nil {
		return nil, results[0].Error
	}

	amount := results[0].Balance
	return &entity.NativeBalance{
		WalletAddress: walletAddress,
		Chain:         chain,
		Amount:        amount,
		Balance:       utils.ToDecimal(amount, chain.Decimals),
	}, nil
}

// Provider implements port.BalanceFetcher.
func (c *AlchemyClient) Provider() entity.ProviderKind {
	return entity.ProviderAlchemy
}

var _ port.BalanceFetcher = (*AlchemyClient)(nil)
