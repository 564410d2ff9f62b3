// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/ardanlabs/ledger/business/sys/metrics"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log         *zap.SugaredLogger
	State       *state.State
	WS          websocket.Upgrader
	Evts        *events.Feed
	DemoAccount database.AccountID
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Subscribe(v.TraceID)
	defer h.Evts.Unsubscribe(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction signs a new transaction with the ledger key and adds
// it to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nt newTx
	if err := web.Decode(r, &nt); err != nil {
		return errs.BadRequest(err)
	}

	h.Log.Infow("submit tran", "traceid", v.TraceID, "sender", nt.Sender, "recipient", nt.Recipient, "amount", nt.Amount)

	signedTx, err := h.State.SubmitTransaction(database.AccountID(nt.Sender), database.AccountID(nt.Recipient), nt.Amount)
	if err != nil {
		if errors.Is(err, database.ErrInvalidAccount) || errors.Is(err, database.ErrNegativeAmount) {
			return errs.BadRequest(err)
		}
		return fmt.Errorf("submit transaction: %w", err)
	}

	h.Log.Infow("submit tran", "traceid", v.TraceID, "sig", signedTx.SignatureString())

	resp := status{
		Status: "transaction added to mempool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// MineBlock seals the mempool plus a reward for the miner into a new block.
func (h Handlers) MineBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var mr mineRequest
	if err := web.Decode(r, &mr); err != nil {
		return errs.BadRequest(err)
	}

	h.Log.Infow("mine block", "traceid", v.TraceID, "miner", mr.MinerAddress)

	blk, err := h.State.MinePending(database.AccountID(mr.MinerAddress))
	if err != nil {
		if errors.Is(err, database.ErrInvalidAccount) {
			return errs.BadRequest(err)
		}
		return fmt.Errorf("mine block: %w", err)
	}

	metrics.AddMined(ctx)

	return web.Respond(ctx, w, toBlock(blk), http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := toTxs(h.State.RetrieveMempool())
	return web.Respond(ctx, w, txs, http.StatusOK)
}

// VerifyMempool checks the signature of every uncommitted transaction.
func (h Handlers) VerifyMempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	count, err := h.State.AuditPending()

	resp := verification{
		Valid: err == nil,
		Count: count,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// VerifyChain walks the chain and checks every block.
func (h Handlers) VerifyChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	count, err := h.State.AuditChain()

	resp := verification{
		Valid: err == nil,
		Count: int(count),
	}
	if err != nil {
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balance returns the balance for the specified account.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := database.ToAccountID(web.Param(r, "account"))
	if err != nil {
		return errs.BadRequest(err)
	}

	value, err := h.State.QueryBalance(accountID)
	if err != nil {
		return err
	}

	resp := balance{
		Account: accountID,
		Balance: value,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balances returns the current balances for every account in the chain.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	sheet, err := h.State.QueryBalanceSheet()
	if err != nil {
		return err
	}

	bals := make([]balance, 0, len(sheet.Balances))
	for accountID, value := range sheet.Balances {
		bals = append(bals, balance{Account: accountID, Balance: value})
	}
	sort.Slice(bals, func(i, j int) bool { return bals[i].Account < bals[j].Account })

	resp := balances{
		LatestBlock: sheet.LatestBlock.Hash,
		Uncommitted: sheet.Uncommitted,
		Balances:    bals,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// WalletBalance returns the balance of the demo account.
func (h Handlers) WalletBalance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	value, err := h.State.QueryBalance(h.DemoAccount)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, walletBalance{Balance: value}, http.StatusOK)
}

// BlocksByAccount returns the blocks with a transaction for the account,
// or every block when no account is given.
func (h Handlers) BlocksByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var accountID database.AccountID
	if param := web.Param(r, "account"); param != "" {
		var err error
		accountID, err = database.ToAccountID(param)
		if err != nil {
			return errs.BadRequest(err)
		}
	}

	dbBlocks, err := h.State.QueryBlocksByAccount(accountID)
	if err != nil {
		return err
	}

	if len(dbBlocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	blocks := make([]block, len(dbBlocks))
	for i, blk := range dbBlocks {
		blocks[i] = toBlock(blk)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}
