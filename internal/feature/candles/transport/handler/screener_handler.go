package handler

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"screener/internal/feature/candles/domain/entity"
	"screener/internal/feature/candles/usecase"
	"screener/internal/platform/chart"
)

// DefaultTicker はフォーム未入力時に表示する銘柄です。
const DefaultTicker = "SNGSP"

// DefaultAssetsURL はEChartsスクリプトの取得元です。
const DefaultAssetsURL = "https://cdn.jsdelivr.net/npm/echarts@5/dist/echarts.min.js"

// dataUnavailableNotice は1つでも時間足が欠けた場合に表示する文言です。
const dataUnavailableNotice = "Invalid ticker or no data available."

//go:embed templates/screener.html
var templateFS embed.FS

var screenerTemplate = template.Must(template.ParseFS(templateFS, "templates/screener.html"))

// ChartRenderer はパイプライン結果をチャートに変換するインターフェースです。
type ChartRenderer interface {
	RenderAll(result entity.PipelineResult) ([]chart.Artifact, error)
}

// ScreenerConfig は画面の設定です。
type ScreenerConfig struct {
	DefaultTicker string // 初期表示の銘柄
	AssetsURL     string // echarts.min.js のURL
}

// ScreenerHandler は銘柄入力フォームと4つのローソク足チャートを持つページを返します。
type ScreenerHandler struct {
	uc       PipelineUsecase
	renderer ChartRenderer
	cfg      ScreenerConfig
	now      func() time.Time
}

type screenerPage struct {
	Ticker    string
	Error     string
	AssetsURL string
	Charts    []chart.Artifact
}

// NewScreenerHandler は ScreenerHandler を生成します。空の設定項目はデフォルト値を使います。
func NewScreenerHandler(uc PipelineUsecase, renderer ChartRenderer, cfg ScreenerConfig) *ScreenerHandler {
	if cfg.DefaultTicker == "" {
		cfg.DefaultTicker = DefaultTicker
	}
	if cfg.AssetsURL == "" {
		cfg.AssetsURL = DefaultAssetsURL
	}
	return &ScreenerHandler{uc: uc, renderer: renderer, cfg: cfg, now: time.Now}
}

// Index は GET / と POST / を処理します。POST ではフォームの ticker を使います。
//
// エンドポイント例:
// GET /
// POST / (ticker=GAZP)
func (h *ScreenerHandler) Index(c *gin.Context) {
	ticker := h.cfg.DefaultTicker
	if c.Request.Method == http.MethodPost {
		ticker = tickerFromForm(c, h.cfg.DefaultTicker)
	}
	ticker = usecase.NormalizeTicker(ticker)

	result := h.uc.RunPipeline(c.Request.Context(), ticker, h.now())

	var buf bytes.Buffer
	if err := h.WritePage(&buf, result); err != nil {
		slog.Error("failed to execute screener template", "ticker", ticker, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// WritePage は result を画面のHTMLとして w に書き込みます。
// 欠けた時間足はチャートを出さず、HasError の場合は注意文を表示します。
func (h *ScreenerHandler) WritePage(w io.Writer, result entity.PipelineResult) error {
	page := screenerPage{
		Ticker:    result.Ticker,
		AssetsURL: h.cfg.AssetsURL,
	}
	if result.HasError {
		page.Error = dataUnavailableNotice
	}

	charts, err := h.renderer.RenderAll(result)
	if err != nil {
		// 描画できなかった時間足はチャートなしとして扱う
		slog.Error("failed to render charts", "ticker", result.Ticker, "error", err)
		page.Error = dataUnavailableNotice
	}
	page.Charts = charts

	return screenerTemplate.Execute(w, page)
}

// tickerFromForm はフォームの ticker を取り出します。未入力なら def を返します。
func tickerFromForm(c *gin.Context, def string) string {
	if t := strings.TrimSpace(c.PostForm("ticker")); t != "" {
		return t
	}
	return def
}
