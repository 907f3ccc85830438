package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/entities"
	domainerrors "mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/errors"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/domain/valueobjects"
	"mintmymoment/contexts/collectibles-trading/moment-gateway-service/ports"
	"mintmymoment/internal/shared/ledgerfmt"
)

// Client is the HTTP ledger backend talking to the external canister
// service. Count doubles as the availability probe; mutating calls map the
// remote ok/err result variant onto the gateway error taxonomy.
type Client struct {
	baseURL    string
	canisterID string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(host, canisterID string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(host, "/"),
		canisterID: canisterID,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Name() string { return "remote" }

func (c *Client) Count(ctx context.Context) (int, error) {
	var body struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/nfts/count", &body); err != nil {
		return 0, fmt.Errorf("%w: %s", domainerrors.ErrRemoteUnavailable, err)
	}
	return body.Count, nil
}

func (c *Client) ListAll(ctx context.Context) ([]entities.Moment, error) {
	var body struct {
		NFTs []momentRecord `json:"nfts"`
	}
	if err := c.get(ctx, "/nfts", &body); err != nil {
		return nil, err
	}
	return normalizeAll(body.NFTs), nil
}

func (c *Client) ListByOwner(ctx context.Context, owner string) ([]entities.Moment, error) {
	var body struct {
		NFTs []momentRecord `json:"nfts"`
	}
	if err := c.get(ctx, "/owners/"+url.PathEscape(owner)+"/nfts", &body); err != nil {
		return nil, err
	}
	return normalizeAll(body.NFTs), nil
}

func (c *Client) Get(ctx context.Context, id string) (entities.Moment, bool, error) {
	var body struct {
		NFT *momentRecord `json:"nft"`
	}
	if err := c.get(ctx, "/nfts/"+url.PathEscape(id), &body); err != nil {
		return entities.Moment{}, false, err
	}
	if body.NFT == nil {
		return entities.Moment{}, false, nil
	}
	return body.NFT.normalize(), true, nil
}

func (c *Client) Mint(ctx context.Context, submission ports.MintSubmission) (string, error) {
	request := mintRequest{
		Title:       submission.Title,
		Description: submission.Description,
		Sport:       submission.Sport,
		PlayerName:  submission.PlayerName,
		EventDate:   submission.EventDate,
		ImageURL:    submission.MediaURL,
		PriceE8s:    submission.PriceE8s,
	}
	var result struct {
		OK  *string `json:"ok"`
		Err *string `json:"err"`
	}
	if err := c.post(ctx, "/nfts", request, &result); err != nil {
		return "", &domainerrors.RemoteRejectedError{Reason: err.Error()}
	}
	if result.Err != nil {
		return "", &domainerrors.RemoteRejectedError{Reason: *result.Err}
	}
	if result.OK == nil {
		return "", &domainerrors.RemoteRejectedError{Reason: "ledger returned no token id"}
	}
	return *result.OK, nil
}

func (c *Client) Buy(ctx context.Context, id string, buyer string) error {
	return c.submit(ctx, "/nfts/"+url.PathEscape(id)+"/buy", map[string]string{"buyer": buyer})
}

func (c *Client) Transfer(ctx context.Context, id string, to string) error {
	return c.submit(ctx, "/nfts/"+url.PathEscape(id)+"/transfer", map[string]string{"to": to})
}

// submit posts a mutating request whose response is the remote ok/err variant.
func (c *Client) submit(ctx context.Context, path string, payload any) error {
	var result struct {
		Err *string `json:"err"`
	}
	if err := c.post(ctx, path, payload, &result); err != nil {
		return &domainerrors.RemoteRejectedError{Reason: err.Error()}
	}
	if result.Err != nil {
		return &domainerrors.RemoteRejectedError{Reason: *result.Err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return err
	}
	return c.do(request, out)
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	return c.do(request, out)
}

func (c *Client) do(request *http.Request, out any) error {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, 256))
		return fmt.Errorf("ledger responded %d: %s", response.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return json.NewDecoder(response.Body).Decode(out)
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/api/v1/canisters/%s%s", c.baseURL, c.canisterID, path)
}

type mintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Sport       string `json:"sport"`
	PlayerName  string `json:"playerName"`
	EventDate   string `json:"eventDate"`
	ImageURL    string `json:"imageUrl"`
	PriceE8s    uint64 `json:"price"`
}

// momentRecord is the raw wire shape: minor-unit price, nanosecond
// timestamp, uncanonicalized principals.
type momentRecord struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Sport          string `json:"sport"`
	PlayerName     string `json:"playerName"`
	EventDate      string `json:"eventDate"`
	ImageURL       string `json:"imageUrl"`
	Owner          string `json:"owner"`
	Creator        string `json:"creator"`
	PriceE8s       uint64 `json:"price"`
	CreatedAtNanos int64  `json:"createdAt"`
}

func (r momentRecord) normalize() entities.Moment {
	return entities.Moment{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Sport:       r.Sport,
		PlayerName:  r.PlayerName,
		EventDate:   r.EventDate,
		MediaURL:    r.ImageURL,
		Owner:       valueobjects.CanonicalText(r.Owner),
		Creator:     valueobjects.CanonicalText(r.Creator),
		Price:       ledgerfmt.FormatE8s(r.PriceE8s),
		CreatedAt:   ledgerfmt.TimeFromNanos(r.CreatedAtNanos),
	}
}

func normalizeAll(records []momentRecord) []entities.Moment {
	moments := make([]entities.Moment, 0, len(records))
	for _, record := range records {
		moments = append(moments, record.normalize())
	}
	return moments
}
