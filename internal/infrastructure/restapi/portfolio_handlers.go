package restapi

import (
	"net/http"
	"strings"

	"quantora_agent/internal/app/port"
	"quantora_agent/internal/domain/entity"
	"quantora_agent/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// APIAsset is one asset of the multi-chain portfolio response.
type APIAsset struct {
	Chain         string  `json:"chain"`
	NativeBalance float64 `json:"nativeBalance"`
	Price         float64 `json:"price"`
	Symbol        string  `json:"symbol"`
	Value         string  `json:"value"`   // 2 знака
	Balance       string  `json:"balance"` // 4 знака
}

// APIPortfolioResponse определяет структуру ответа для эндпоинта /connect.
type APIPortfolioResponse struct {
	TotalValue string     `json:"totalValue"`
	Assets     []APIAsset `json:"assets"`
}

// APIJetton is one jetton of the TON assets response.
type APIJetton struct {
	Address  string  `json:"address"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Image    string  `json:"image,omitempty"`
	Balance  string  `json:"balance"`
	PriceUSD float64 `json:"priceUsd"`
	ValueUSD string  `json:"valueUsd"`
}

// APITonAssetsResponse определяет структуру ответа для эндпоинта /ton-assets.
type APITonAssetsResponse struct {
	TonBalance    float64                 `json:"tonBalance"`
	AccountState  string                  `json:"accountState"`
	AccountType   string                  `json:"accountType,omitempty"`
	PriceUSD      float64                 `json:"priceUsd"`
	ValueUSD      string                  `json:"valueUsd"`
	TotalValueUSD string                  `json:"totalValueUsd"`
	Jettons       []APIJetton             `json:"jettons"`
	NFTs          []entity.NFTItem        `json:"nfts"`
	Insight       entity.PortfolioInsight `json:"insight"`
}

// PortfolioHandler обрабатывает HTTP запросы, связанные с портфелями.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	tonAssetsService port.TonAssetsService
	chainRegistry    port.ChainRegistry
	logger           port.Logger
}

// NewPortfolioHandler создает новый экземпляр PortfolioHandler.
func NewPortfolioHandler(
	ps port.PortfolioService,
	ts port.TonAssetsService,
	cr port.ChainRegistry,
	l port.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: ps,
		tonAssetsService: ts,
		chainRegistry:    cr,
		logger:           l,
	}
}

// ConnectHandler aggregates native balances of ?wallet= across the tracked chains, or the ones in ?chains=.
func (h *PortfolioHandler) ConnectHandler(c *gin.Context) {
	ctx := c.Request.Context()
	wallet := c.Query("wallet")

	// Пустой кошелек отклоняется раньше, чем невалидный список сетей
	if strings.TrimSpace(wallet) == "" {
		h.writeError(c, entity.ErrWalletRequired)
		return
	}

	chains, err := h.chainRegistry.SelectChains(utils.SplitCSV(c.Query("chains")))
	if err != nil {
		h.writeError(c, err)
		return
	}

	snapshot, err := h.portfolioService.Aggregate(ctx, wallet, chains)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPortfolioResponse(snapshot))
}

// TonAssetsHandler returns balance, jettons, NFTs and insight for the TON wallet in ?address=.
func (h *PortfolioHandler) TonAssetsHandler(c *gin.Context) {
	report, err := h.tonAssetsService.TonAssets(c.Request.Context(), c.Query("address"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTonAssetsResponse(report))
}

// HealthHandler reports liveness.
func (h *PortfolioHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PortfolioHandler) writeError(c *gin.Context, err error) {
	category, status, message := categorize(err)
	if category == CategorySystem {
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, APIError{Error: message})
}

func toPortfolioResponse(s *entity.PortfolioSnapshot) APIPortfolioResponse {
	resp := APIPortfolioResponse{
		TotalValue: utils.FormatFixed(s.TotalValueUSD, 2),
		Assets:     make([]APIAsset, 0, len(s.Assets)),
	}
	for _, a := range s.Assets {
		resp.Assets = append(resp.Assets, APIAsset{
			Chain:         a.Chain,
			NativeBalance: a.NativeBalance.InexactFloat64(),
			Price:         a.PriceUSD.InexactFloat64(),
			Symbol:        a.Symbol,
			Value:         utils.FormatFixed(a.ValueUSD, 2),
			Balance:       utils.FormatFixed(a.NativeBalance, 4),
		})
	}
	return resp
}

func toTonAssetsResponse(r *entity.TonAssetsReport) APITonAssetsResponse {
	tonValue := r.Account.Balance.Mul(r.TonPrice)
	resp := APITonAssetsResponse{
		TonBalance:    r.Account.Balance.InexactFloat64(),
		AccountState:  r.Account.State,
		AccountType:   r.Account.AccountType,
		PriceUSD:      r.TonPrice.InexactFloat64(),
		ValueUSD:      utils.FormatFixed(tonValue, 2),
		TotalValueUSD: utils.FormatFixed(r.Portfolio.TotalValueUSD, 2),
		Jettons:       make([]APIJetton, 0, len(r.Jettons)),
		NFTs:          r.NFTs,
		Insight:       r.Insight,
	}
	for _, j := range r.Jettons {
		resp.Jettons = append(resp.Jettons, APIJetton{
			Address:  j.Address,
			Name:     j.Name,
			Symbol:   j.Symbol,
			Image:    j.Image,
			Balance:  utils.FormatFixed(j.Balance, 4),
			PriceUSD: j.PriceUSD.InexactFloat64(),
			ValueUSD: utils.FormatFixed(j.ValueUSD, 2),
		})
	}
	if resp.NFTs == nil {
		resp.NFTs = []entity.NFTItem{}
	}
	return resp
}
