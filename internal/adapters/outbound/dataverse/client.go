package dataverse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schemaguard/schemaguard/internal/domain"
)

const apiPath = "/api/data/v9.2"

// TokenSource supplies a bearer token per request. Injecting it as a
// capability keeps auth state out of the client so independent validate
// calls compose without hidden coupling.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource backed by a fixed token, typically handed in
// from the CI environment.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// Client implements domain.MetadataRepository against the Dataverse Web API.
// Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

var _ domain.MetadataRepository = (*Client)(nil)

// NewClient creates a Client for the environment at baseURL
// (e.g. https://org.crm.dynamics.com).
func NewClient(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		logger:  logger,
	}
}

type solutionRow struct {
	SolutionID   uuid.UUID `json:"solutionid"`
	UniqueName   string    `json:"uniquename"`
	FriendlyName string    `json:"friendlyname"`
}

func (c *Client) ResolveSolution(ctx context.Context, uniqueName string) (domain.SolutionRef, error) {
	var out struct {
		Value []solutionRow `json:"value"`
	}
	query := "/solutions?$select=solutionid,uniquename,friendlyname&$filter=" +
		url.QueryEscape(fmt.Sprintf("uniquename eq '%s'", uniqueName))
	if err := c.get(ctx, query, &out); err != nil {
		return domain.SolutionRef{}, err
	}
	if len(out.Value) == 0 {
		return domain.SolutionRef{}, fmt.Errorf("solution %s: %w", uniqueName, domain.ErrNotFound)
	}
	row := out.Value[0]
	return domain.SolutionRef{
		ID:           row.SolutionID,
		UniqueName:   row.UniqueName,
		FriendlyName: row.FriendlyName,
	}, nil
}

// entityComponentType is the solution component type code for entities.
const entityComponentType = 1

func (c *Client) ListEntityComponentIDs(ctx context.Context, solutionID uuid.UUID) ([]uuid.UUID, error) {
	var out struct {
		Value []struct {
			ObjectID uuid.UUID `json:"objectid"`
		} `json:"value"`
	}
	query := "/solutioncomponents?$select=objectid&$filter=" +
		url.QueryEscape(fmt.Sprintf("_solutionid_value eq %s and componenttype eq %d", solutionID, entityComponentType))
	if err := c.get(ctx, query, &out); err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(out.Value))
	for _, row := range out.Value {
		ids = append(ids, row.ObjectID)
	}
	return ids, nil
}

func (c *Client) ResolveEntityLogicalName(ctx context.Context, componentID uuid.UUID) (string, error) {
	var out struct {
		LogicalName string `json:"LogicalName"`
	}
	query := fmt.Sprintf("/EntityDefinitions(%s)?$select=LogicalName", componentID)
	if err := c.get(ctx, query, &out); err != nil {
		return "", err
	}
	return out.LogicalName, nil
}

type entityRow struct {
	LogicalName string    `json:"LogicalName"`
	SchemaName  string    `json:"SchemaName"`
	MetadataID  uuid.UUID `json:"MetadataId"`
	DisplayName struct {
		UserLocalizedLabel *struct {
			Label string `json:"Label"`
		} `json:"UserLocalizedLabel"`
	} `json:"DisplayName"`
	IsCustomEntity bool   `json:"IsCustomEntity"`
	IconVectorName string `json:"IconVectorName"`
	IconSmallName  string `json:"IconSmallName"`
}

func (c *Client) GetEntityDescriptor(ctx context.Context, logicalName string) (*domain.EntityDescriptor, error) {
	var row entityRow
	query := fmt.Sprintf("/EntityDefinitions(LogicalName='%s')"+
		"?$select=LogicalName,SchemaName,MetadataId,DisplayName,IsCustomEntity,IconVectorName,IconSmallName",
		logicalName)
	if err := c.get(ctx, query, &row); err != nil {
		return nil, err
	}

	desc := &domain.EntityDescriptor{
		LogicalName:    row.LogicalName,
		SchemaName:     row.SchemaName,
		MetadataID:     row.MetadataID,
		IsCustomEntity: row.IsCustomEntity,
		HasIcon:        row.IconVectorName != "" || row.IconSmallName != "",
	}
	if row.DisplayName.UserLocalizedLabel != nil {
		desc.DisplayName = row.DisplayName.UserLocalizedLabel.Label
	}
	return desc, nil
}

type attributeRow struct {
	LogicalName       string     `json:"LogicalName"`
	SchemaName        string     `json:"SchemaName"`
	AttributeType     string     `json:"AttributeType"`
	IsCustomAttribute bool       `json:"IsCustomAttribute"`
	CreatedOn         *time.Time `json:"CreatedOn"`
}

func (c *Client) ListAttributes(ctx context.Context, logicalName string) ([]domain.AttributeDescriptor, error) {
	var out struct {
		Value []attributeRow `json:"value"`
	}
	query := fmt.Sprintf("/EntityDefinitions(LogicalName='%s')/Attributes"+
		"?$select=LogicalName,SchemaName,AttributeType,IsCustomAttribute,CreatedOn",
		logicalName)
	if err := c.get(ctx, query, &out); err != nil {
		return nil, err
	}

	attrs := make([]domain.AttributeDescriptor, 0, len(out.Value))
	for _, row := range out.Value {
		attrs = append(attrs, domain.AttributeDescriptor{
			LogicalName:       row.LogicalName,
			SchemaName:        row.SchemaName,
			Type:              domain.AttributeType(row.AttributeType),
			IsCustomAttribute: row.IsCustomAttribute,
			CreatedOn:         row.CreatedOn,
		})
	}
	return attrs, nil
}

func (c *Client) GetOptionSetGlobalFlag(ctx context.Context, entityName, attributeName string) (bool, error) {
	var out struct {
		OptionSet *struct {
			IsGlobal bool `json:"IsGlobal"`
		} `json:"OptionSet"`
		GlobalOptionSet *struct {
			IsGlobal bool `json:"IsGlobal"`
		} `json:"GlobalOptionSet"`
	}
	query := fmt.Sprintf("/EntityDefinitions(LogicalName='%s')/Attributes(LogicalName='%s')"+
		"/Microsoft.Dynamics.CRM.PicklistAttributeMetadata"+
		"?$expand=OptionSet($select=IsGlobal),GlobalOptionSet($select=IsGlobal)",
		entityName, attributeName)
	if err := c.get(ctx, query, &out); err != nil {
		return false, err
	}
	if out.GlobalOptionSet != nil {
		return out.GlobalOptionSet.IsGlobal, nil
	}
	if out.OptionSet != nil {
		return out.OptionSet.IsGlobal, nil
	}
	return false, fmt.Errorf("attribute %s.%s has no option set metadata", entityName, attributeName)
}

// get performs one authenticated Web API request and decodes the JSON body
// into out. 404 responses map to domain.ErrNotFound.
func (c *Client) get(ctx context.Context, query string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPath+query, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("acquiring token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("metadata request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", query, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Debug("metadata request failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("metadata request: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
