// internal/database/mockdb/querier.go

// Package mockdb provides testify mocks of the database package interfaces.
package mockdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github-issue-tracker/internal/database"
)

// MockQuerier is a mock of the database.Querier interface.
type MockQuerier struct {
	mock.Mock
}

var _ database.Querier = (*MockQuerier)(nil)

func (m *MockQuerier) CountIssues(ctx context.Context, arg database.CountIssuesParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) GetIssueByID(ctx context.Context, id uuid.UUID) (database.Issue, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(database.Issue), args.Error(1)
}
func (m *MockQuerier) GetIssueByNumberForUpdate(ctx context.Context, arg database.GetIssueByNumberForUpdateParams) (database.Issue, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Issue), args.Error(1)
}
func (m *MockQuerier) InsertIssue(ctx context.Context, arg database.InsertIssueParams) (database.Issue, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Issue), args.Error(1)
}
func (m *MockQuerier) ListIssues(ctx context.Context, arg database.ListIssuesParams) ([]database.Issue, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.Issue), args.Error(1)
}
func (m *MockQuerier) ListRepositories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockQuerier) StartIssue(ctx context.Context, arg database.StartIssueParams) (database.Issue, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Issue), args.Error(1)
}
func (m *MockQuerier) UpdateIssueFromRemote(ctx context.Context, arg database.UpdateIssueFromRemoteParams) (database.Issue, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Issue), args.Error(1)
}

// TxRunner runs every unit of work directly against Q, without a real transaction.
type TxRunner struct {
	Q database.Querier
}

var _ database.TxRunner = TxRunner{}

func (r TxRunner) ExecTx(_ context.Context, fn func(database.Querier) error) error {
	return fn(r.Q)
}
