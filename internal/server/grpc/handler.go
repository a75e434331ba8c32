package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/crossclip/internal/api"
	"github.com/dmitrijs2005/crossclip/internal/common"
	"github.com/dmitrijs2005/crossclip/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, AvatarURL: u.AvatarURL}
}

func toAPIItem(i *models.Item) *api.Item {
	return &api.Item{
		ID:           i.ID,
		Content:      i.Content,
		CreatedAt:    i.CreatedAt,
		OwnerID:      i.UserID,
		OriginDevice: i.OriginDevice,
	}
}

func (s *GRPCServer) requireUser(ctx context.Context) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return userID, nil
}

func (s *GRPCServer) internalError(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.SignInResponse, error) {
	tokens, user, err := s.users.SignIn(ctx, req.GoogleIDToken)
	if err != nil {
		if errors.Is(err, common.ErrIdentityRejected) {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return nil, s.internalError(ctx, "sign in failed", err)
	}

	s.logger.Info(ctx, "Signed in", "user_id", user.ID)
	return &api.SignInResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         toAPIUser(user),
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			return nil, status.Error(codes.Unauthenticated, err.Error())
		case errors.Is(err, common.ErrorUnauthorized):
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return nil, s.internalError(ctx, "refresh token failed", err)
	}
	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *api.SignOutRequest) (*api.SignOutResponse, error) {
	if err := s.users.SignOut(ctx, req.RefreshToken); err != nil {
		return nil, s.internalError(ctx, "sign out failed", err)
	}
	return &api.SignOutResponse{}, nil
}

func (s *GRPCServer) CurrentUser(ctx context.Context, req *api.CurrentUserRequest) (*api.CurrentUserResponse, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.users.CurrentUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		return nil, s.internalError(ctx, "current user failed", err)
	}
	return &api.CurrentUserResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) AddItem(ctx context.Context, req *api.AddItemRequest) (*api.AddItemResponse, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Item == nil {
		return nil, status.Error(codes.InvalidArgument, "item is required")
	}
	if req.Item.OwnerID != "" && req.Item.OwnerID != userID {
		return nil, status.Error(codes.PermissionDenied, "owner mismatch")
	}

	id, err := s.items.Add(ctx, userID, &models.Item{
		Content:      req.Item.Content,
		CreatedAt:    req.Item.CreatedAt,
		OriginDevice: req.Item.OriginDevice,
	})
	if err != nil {
		if errors.Is(err, common.ErrorEmptyContent) || errors.Is(err, common.ErrorContentTooLarge) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, s.internalError(ctx, "add item failed", err)
	}

	s.logger.Debug(ctx, "Item added", "user_id", userID, "item_id", id)
	return &api.AddItemResponse{ID: id}, nil
}

func (s *GRPCServer) ListItems(ctx context.Context, req *api.ListItemsRequest) (*api.ListItemsResponse, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != "" && req.OwnerID != userID {
		return nil, status.Error(codes.PermissionDenied, "owner mismatch")
	}

	items, err := s.items.List(ctx, userID)
	if err != nil {
		return nil, s.internalError(ctx, "list items failed", err)
	}

	resp := &api.ListItemsResponse{Items: make([]*api.Item, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, toAPIItem(it))
	}
	return resp, nil
}

func (s *GRPCServer) DeleteItem(ctx context.Context, req *api.DeleteItemRequest) (*api.DeleteItemResponse, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	if err := s.items.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.internalError(ctx, "delete item failed", err)
	}
	return &api.DeleteItemResponse{}, nil
}
