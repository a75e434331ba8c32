package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/api"
	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const pingTimeout = 2 * time.Second

var errNoRefreshToken = errors.New("no refresh token")

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.CrossClipServiceClient
	tokens      TokenStore

	// serialises refreshes so a rotated refresh token is used once
	refreshMu sync.Mutex
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, _, err := s.tokens.Tokens(ctx)
	if err != nil {
		return err
	}

	err = invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	if method == api.FullMethod(api.MethodRefreshToken) {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() != codes.Unauthenticated {
		return err
	}
	if st.Message() != common.ErrTokenExpired.Error() {
		return err
	}

	newAccessToken, rerr := s.refreshTokens(ctx, accessToken)
	if errors.Is(rerr, errNoRefreshToken) {
		return err
	}
	if rerr != nil {
		return rerr
	}

	return invoker(withAccessToken(ctx, newAccessToken), method, req, reply, cc, opts...)
}

// refreshTokens exchanges the stored refresh token for a new pair. When
// another call already rotated the pair since stale was read, the current
// access token is returned without contacting the server.
func (s *GRPCClient) refreshTokens(ctx context.Context, stale string) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	accessToken, refreshToken, err := s.tokens.Tokens(ctx)
	if err != nil {
		return "", err
	}
	if accessToken != "" && accessToken != stale {
		return accessToken, nil
	}
	if refreshToken == "" {
		return "", errNoRefreshToken
	}

	resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", err
	}

	if err := s.tokens.SaveTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// NewGRPCClient creates a client for endpointURL. No connection is made
// until the first call.
func NewGRPCClient(endpointURL string, tokens TokenStore) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, tokens: tokens}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewCrossClipServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

// SignIn trades a Google ID token for a CrossClip session and stores
// the issued tokens.
func (s *GRPCClient) SignIn(ctx context.Context, googleIDToken string) (*models.Session, error) {

	resp, err := s.client.SignIn(ctx, &api.SignInRequest{GoogleIDToken: googleIDToken})
	if err != nil {
		return nil, s.mapError(err)
	}

	if err := s.tokens.SaveTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("save tokens: %w", err)
	}

	return sessionFromUser(resp.User), nil
}

// SignOut revokes the stored refresh token and forgets the local session.
// A refresh token the server no longer knows counts as signed out.
func (s *GRPCClient) SignOut(ctx context.Context) error {

	_, refreshToken, err := s.tokens.Tokens(ctx)
	if err != nil {
		return err
	}

	if refreshToken != "" {
		_, err := s.client.SignOut(ctx, &api.SignOutRequest{RefreshToken: refreshToken})
		if err := s.mapError(err); err != nil && !errors.Is(err, ErrUnauthorized) {
			return err
		}
	}

	return s.tokens.ClearTokens(ctx)
}

// CurrentUser returns the principal of the stored session, or nil when
// there is none. A session the server rejects is cleared locally.
func (s *GRPCClient) CurrentUser(ctx context.Context) (*models.Session, error) {

	accessToken, refreshToken, err := s.tokens.Tokens(ctx)
	if err != nil {
		return nil, err
	}
	if accessToken == "" && refreshToken == "" {
		return nil, nil
	}

	resp, err := s.client.CurrentUser(ctx, &api.CurrentUserRequest{})
	if err != nil {
		err = s.mapError(err)
		if errors.Is(err, ErrUnauthorized) {
			return nil, s.tokens.ClearTokens(ctx)
		}
		return nil, err
	}

	return sessionFromUser(resp.User), nil
}

func (s *GRPCClient) AddItem(ctx context.Context, item models.Item) (string, error) {

	req := &api.AddItemRequest{Item: &api.Item{
		Content:      item.Content,
		CreatedAt:    item.CreatedAt,
		OwnerID:      item.OwnerID,
		OriginDevice: item.OriginDevice,
	}}

	resp, err := s.client.AddItem(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.ID, nil
}

func (s *GRPCClient) ListItems(ctx context.Context, ownerID string) ([]models.Item, error) {

	resp, err := s.client.ListItems(ctx, &api.ListItemsRequest{OwnerID: ownerID})
	if err != nil {
		return nil, s.mapError(err)
	}

	items := make([]models.Item, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it == nil {
			continue
		}
		items = append(items, models.Item{
			ID:           it.ID,
			Content:      it.Content,
			CreatedAt:    it.CreatedAt,
			OwnerID:      it.OwnerID,
			OriginDevice: it.OriginDevice,
		})
	}
	return items, nil
}

func (s *GRPCClient) DeleteItem(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &api.DeleteItemRequest{ID: id})
	return s.mapError(err)
}

func sessionFromUser(u *api.User) *models.Session {
	if u == nil {
		return nil
	}
	return &models.Session{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
