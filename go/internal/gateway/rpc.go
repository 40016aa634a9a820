package gateway

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// GetScoreboardProcedure is the Connect procedure path for the scoreboard
const GetScoreboardProcedure = "/minigames.scoreboard.v1.ScoreboardService/GetScoreboard"

// NewScoreboardHandler serves the scoreboard as a Connect unary RPC.
// The response is a google.protobuf.Struct so no generated code is needed.
func NewScoreboardHandler(reader ScoreboardReader, opts ...connect.HandlerOption) (string, http.Handler) {
	return GetScoreboardProcedure, connect.NewUnaryHandler(
		GetScoreboardProcedure,
		func(ctx context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[structpb.Struct], error) {
			board, err := reader.Scoreboard(ctx)
			if err != nil {
				return nil, connect.NewError(connect.CodeInternal, err)
			}

			msg, err := scoreboardStruct(board)
			if err != nil {
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			return connect.NewResponse(msg), nil
		},
		opts...,
	)
}

func scoreboardStruct(board *Scoreboard) (*structpb.Struct, error) {
	games := make([]any, len(board.Games))
	for i, g := range board.Games {
		games[i] = map[string]any{
			"game":   g.Game,
			"plays":  float64(g.Plays),
			"solved": float64(g.Solved),
		}
	}

	generated := timestamppb.New(board.GeneratedAt)
	if err := generated.CheckValid(); err != nil {
		return nil, err
	}

	return structpb.NewStruct(map[string]any{
		"games":       games,
		"generatedAt": generated.AsTime().Format(time.RFC3339),
	})
}
