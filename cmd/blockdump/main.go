package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-store/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/repository/pebble"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/safe"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	DataDir string        `long:"data-dir" env:"STORE_DATA_DIR" description:"pebble data directory" required:"true"`
	Coin    model.Coin    `long:"coin" env:"STORE_COIN" description:"coin name" default:"btc"`
	Network model.Network `long:"network" env:"STORE_NETWORK" description:"network name" default:"mainnet"`
	Height  int64         `long:"height" description:"height to dump, -1 for the stored tip" default:"-1"`
	Indent  bool          `long:"indent" description:"indent JSON output"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.Coin, err = model.ParseCoin(string(cfg.Coin)); err != nil {
		logger.Fatal("invalid coin", zap.Error(err))
	}

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Fatal("block dump failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger, out io.Writer) error {
	decoder, err := bitcoin.NewScriptDecoder(cfg.Coin, cfg.Network)
	if err != nil {
		return err
	}

	repo, err := pebble.Open(cfg.DataDir, logger, metrics.NewRepository(cfg.Coin, cfg.Network))
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("close repository", zap.Error(err))
		}
	}()

	height, err := dumpHeight(ctx, repo, cfg.Height)
	if err != nil {
		return err
	}

	view, err := buildBlockView(ctx, repo, decoder, height)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	if cfg.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(view)
}

func dumpHeight(ctx context.Context, repo *pebble.Repository, requested int64) (uint32, error) {
	if requested >= 0 {
		height, err := safe.Uint32(requested)
		if err != nil {
			return 0, fmt.Errorf("height %d: %w", requested, err)
		}
		return height, nil
	}
	tip, ok, err := repo.Tip(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New("store is empty")
	}
	return tip, nil
}

type blockView struct {
	Height       uint32   `json:"height"`
	Hash         string   `json:"hash"`
	PrevBlock    string   `json:"prev_block"`
	MerkleRoot   string   `json:"merkle_root"`
	Time         string   `json:"time"`
	Version      int32    `json:"version"`
	Bits         string   `json:"bits"`
	Nonce        uint32   `json:"nonce"`
	FirstPointer uint64   `json:"first_pointer"`
	Txs          []txView `json:"txs"`
}

type txView struct {
	Pointer  uint64       `json:"pointer"`
	TxID     string       `json:"txid"`
	Version  int32        `json:"version"`
	LockTime uint32       `json:"locktime"`
	Coinbase string       `json:"coinbase,omitempty"`
	Inputs   []inputView  `json:"inputs,omitempty"`
	Outputs  []outputView `json:"outputs"`
}

type inputView struct {
	Kind      string   `json:"kind"`
	TxPointer *uint64  `json:"tx_pointer,omitempty"`
	TxID      string   `json:"txid,omitempty"`
	Vout      uint32   `json:"vout"`
	Sequence  uint32   `json:"sequence"`
	ScriptSig string   `json:"script_sig"`
	Witness   []string `json:"witness,omitempty"`
}

type outputView struct {
	Vout      uint32   `json:"vout"`
	Value     string   `json:"value"`
	Sats      uint64   `json:"sats"`
	Class     string   `json:"class"`
	Addresses []string `json:"addresses,omitempty"`
	Script    string   `json:"script"`
	SpentBy   *uint64  `json:"spent_by,omitempty"`
}

func buildBlockView(ctx context.Context, repo *pebble.Repository, decoder *bitcoin.ScriptDecoder, height uint32) (blockView, error) {
	header, err := repo.Header(ctx, height)
	if err != nil {
		return blockView{}, err
	}
	block, err := repo.Block(ctx, height)
	if err != nil {
		return blockView{}, err
	}

	first, err := firstPointer(ctx, repo, height)
	if err != nil {
		return blockView{}, err
	}

	view := blockView{
		Height:       height,
		Hash:         header.Hash.String(),
		PrevBlock:    header.PrevBlock.String(),
		MerkleRoot:   header.MerkleRoot.String(),
		Time:         header.Time().UTC().Format(time.RFC3339),
		Version:      header.Version,
		Bits:         fmt.Sprintf("%08x", header.Bits),
		Nonce:        header.Nonce,
		FirstPointer: uint64(first),
		Txs:          make([]txView, 0, len(block.Txs)+1),
	}

	cb := block.Coinbase
	outputs, err := outputViews(ctx, repo, decoder, first, cb.Vout)
	if err != nil {
		return blockView{}, err
	}
	view.Txs = append(view.Txs, txView{
		Pointer:  uint64(first),
		TxID:     cb.TxID.String(),
		Version:  cb.Version,
		LockTime: cb.LockTime,
		Coinbase: hex.EncodeToString(cb.Coinbase),
		Outputs:  outputs,
	})

	for i, tx := range block.Txs {
		ptr := first + 1 + stored.Pointer(i)
		outputs, err := outputViews(ctx, repo, decoder, ptr, tx.Vout)
		if err != nil {
			return blockView{}, err
		}
		view.Txs = append(view.Txs, txView{
			Pointer:  uint64(ptr),
			TxID:     tx.TxID.String(),
			Version:  tx.Version,
			LockTime: tx.LockTime,
			Inputs:   inputViews(tx.Vin),
			Outputs:  outputs,
		})
	}
	return view, nil
}

// firstPointer returns the coinbase pointer stored for height and checks it against the
// location index.
func firstPointer(ctx context.Context, repo *pebble.Repository, height uint32) (stored.Pointer, error) {
	ptr, err := repo.FirstPointer(ctx, height)
	if err != nil {
		return 0, err
	}
	loc, err := repo.Locate(ctx, ptr)
	if err != nil {
		return 0, err
	}
	if loc.Height != height || loc.Position != 0 {
		return 0, fmt.Errorf("first pointer %s of height %d is located at height %d position %d",
			ptr, height, loc.Height, loc.Position)
	}
	return ptr, nil
}

func inputViews(vin []stored.TxInput) []inputView {
	views := make([]inputView, 0, len(vin))
	for _, in := range vin {
		v := inputView{
			Kind:      string(in.Kind),
			Vout:      in.Vout(),
			Sequence:  in.Sequence,
			ScriptSig: hex.EncodeToString(in.ScriptSig),
		}
		if in.Kind == stored.InputResolved {
			p := uint64(in.Resolved.Tx)
			v.TxPointer = &p
		} else {
			v.TxID = in.Unresolved.TxID.String()
		}
		for _, item := range in.Witness {
			v.Witness = append(v.Witness, hex.EncodeToString(item))
		}
		views = append(views, v)
	}
	return views
}

func outputViews(ctx context.Context, repo *pebble.Repository, decoder *bitcoin.ScriptDecoder, tx stored.Pointer, vout []stored.TxOutput) ([]outputView, error) {
	views := make([]outputView, 0, len(vout))
	for i, out := range vout {
		n := uint32(i)
		desc, err := decoder.Describe(out.ScriptPubKey, out.Value)
		if err != nil {
			return nil, fmt.Errorf("output %s:%d: %w", tx, n, err)
		}
		v := outputView{
			Vout:      n,
			Value:     desc.Amount.String(),
			Sats:      out.Value,
			Class:     desc.Class,
			Addresses: desc.Addresses,
			Script:    hex.EncodeToString(out.ScriptPubKey),
		}
		spender, spent, err := repo.Spender(ctx, tx, n)
		if err != nil {
			return nil, err
		}
		if spent {
			s := uint64(spender)
			v.SpentBy = &s
		}
		views = append(views, v)
	}
	return views, nil
}
