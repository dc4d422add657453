package service

import (
	"context"
	"encoding/json"
	"testing"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/model"
)

func TestBoardService_Access(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewBoardService(uow)

	lawyer := signUpLawyer(t, uow, "lawyer")
	employee := signUpEmployee(t, uow, "employee")

	_, err := svc.Create(ctx, lawyer, model.BoardType("NOPE"), &dto.BoardRequest{Title: "t"})
	assertErr(t, err, ErrInvalidBoardType)

	_, err = svc.Create(ctx, employee, model.BoardTypeLawyer, &dto.BoardRequest{Title: "t"})
	assertErr(t, err, ErrHasNotPermission)

	board, err := svc.Create(ctx, lawyer, model.BoardTypeLawyerQA, &dto.BoardRequest{Title: "t"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err = svc.Get(ctx, employee, board.ID)
	assertErr(t, err, ErrHasNotPermission)

	_, err = svc.List(ctx, employee, model.BoardTypeLawyerQA, 0)
	assertErr(t, err, ErrHasNotPermission)

	if _, err := svc.Create(ctx, employee, model.BoardTypeAll, &dto.BoardRequest{Title: "t"}); err != nil {
		t.Errorf("职员应可在公共板块发帖: %v", err)
	}
}

func TestBoardService_Lifecycle(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewBoardService(uow)

	writer := signUpLawyer(t, uow, "writer")
	reader := signUpEmployee(t, uow, "reader")

	board, err := svc.Create(ctx, writer, model.BoardTypeAll, &dto.BoardRequest{
		Title:       "<i>질문</i>",
		Content:     `<a href="javascript:alert(1)">x</a>`,
		Images:      []string{"https://cdn.example.com/a.png", "ftp://bad", ""},
		IsAnonymous: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if board.Title != "질문" || len(board.Images) != 1 {
		t.Errorf("board = %+v", board)
	}
	if !board.IsMyBoard {
		t.Errorf("作者查看 IsMyBoard 应为 true")
	}

	viewed, err := svc.Get(ctx, reader, board.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if viewed.IsMyBoard || viewed.WriteUser != nil {
		t.Errorf("匿名帖不应暴露作者: %+v", viewed)
	}

	_, err = svc.Update(ctx, reader, board.ID, &dto.BoardRequest{Title: "x"})
	assertErr(t, err, ErrCannotRemoveBoard)
	_, err = svc.Remove(ctx, reader, board.ID)
	assertErr(t, err, ErrCannotRemoveBoard)

	updated, err := svc.Update(ctx, writer, board.ID, &dto.BoardRequest{Title: "수정"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "수정" {
		t.Errorf("Title = %q", updated.Title)
	}

	boards, err := svc.List(ctx, reader, model.BoardTypeAll, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(boards) != 1 {
		t.Errorf("len(boards) = %d, want 1", len(boards))
	}

	if _, err := svc.Remove(ctx, writer, board.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	_, err = svc.Get(ctx, writer, board.ID)
	assertErr(t, err, ErrNotExistBoard)
}

func TestBoardService_Replies(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewBoardService(uow)

	writer := signUpLawyer(t, uow, "writer")
	replier := signUpLawyer(t, uow, "replier")

	board, err := svc.Create(ctx, writer, model.BoardTypeLawyer, &dto.BoardRequest{Title: "t"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = svc.CreateReply(ctx, replier, 9999, &dto.ReplyRequest{Content: "c"})
	assertErr(t, err, ErrNotExistBoard)

	first, err := svc.CreateReply(ctx, replier, board.ID, &dto.ReplyRequest{Content: "first"})
	if err != nil {
		t.Fatalf("CreateReply() error = %v", err)
	}
	second, err := svc.CreateReply(ctx, writer, board.ID, &dto.ReplyRequest{Content: "second", IsAnonymous: boolPtr(false)})
	if err != nil {
		t.Fatalf("CreateReply() error = %v", err)
	}

	_, err = svc.UpdateReply(ctx, writer, board.ID, first.ID, &dto.ReplyRequest{Content: "x"})
	assertErr(t, err, ErrCannotUpdateReply)
	_, err = svc.RemoveReply(ctx, writer, board.ID, 9999)
	assertErr(t, err, ErrNotExistReply)

	updated, err := svc.UpdateReply(ctx, replier, board.ID, first.ID, &dto.ReplyRequest{Content: "edited"})
	if err != nil {
		t.Fatalf("UpdateReply() error = %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("Content = %q", updated.Content)
	}

	replies, err := svc.ListReplies(ctx, replier, board.ID, 0)
	if err != nil {
		t.Fatalf("ListReplies() error = %v", err)
	}
	if len(replies) != 2 || !replies[0].IsMyReply || replies[0].WriteUser != nil || replies[1].WriteUser == nil {
		t.Errorf("replies = %+v", replies)
	}

	after, err := svc.ListReplies(ctx, replier, board.ID, first.ID)
	if err != nil {
		t.Fatalf("ListReplies() error = %v", err)
	}
	if len(after) != 1 || after[0].ID != second.ID {
		t.Errorf("offset 之后的回复 = %+v", after)
	}

	if _, err := svc.RemoveReply(ctx, writer, board.ID, second.ID); err != nil {
		t.Fatalf("RemoveReply() error = %v", err)
	}
}

func TestBoardService_AnonymousByDefault(t *testing.T) {
	uow := setupTestUoW(t)
	ctx := context.Background()
	svc := NewBoardService(uow)

	writer := signUpLawyer(t, uow, "writer")
	reader := signUpLawyer(t, uow, "reader")

	tests := []struct {
		name      string
		body      string
		anonymous bool
	}{
		{"未传 isAnonymous", `{"title":"t","content":"c"}`, true},
		{"isAnonymous=true", `{"title":"t","isAnonymous":true}`, true},
		{"isAnonymous=false", `{"title":"t","isAnonymous":false}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.BoardRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			board, err := svc.Create(ctx, writer, model.BoardTypeAll, &req)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			viewed, err := svc.Get(ctx, reader, board.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if viewed.IsAnonymous != tt.anonymous {
				t.Errorf("IsAnonymous = %v, want %v", viewed.IsAnonymous, tt.anonymous)
			}
			if exposed := viewed.WriteUser != nil; exposed == tt.anonymous {
				t.Errorf("作者暴露 = %v, 匿名 = %v", exposed, tt.anonymous)
			}

			var replyReq dto.ReplyRequest
			if err := json.Unmarshal([]byte(`{"content":"r"}`), &replyReq); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			reply, err := svc.CreateReply(ctx, writer, board.ID, &replyReq)
			if err != nil {
				t.Fatalf("CreateReply() error = %v", err)
			}
			if !reply.IsAnonymous || reply.WriteUser != nil {
				t.Errorf("未传 isAnonymous 的回复应匿名: %+v", reply)
			}
		})
	}
}

func boolPtr(v bool) *bool {
	return &v
}
