package rpcclient

import (
	"encoding/hex"
	"fmt"

	"github.com/nspcc-dev/neo-txkit/pkg/core/transaction"
	"github.com/nspcc-dev/neo-txkit/pkg/io"
	"github.com/nspcc-dev/neo-txkit/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-txkit/pkg/util"
)

// relayResult is the answer to sendrawtransaction.
type relayResult struct {
	Hash util.Uint256 `json:"hash"`
}

// GetBlockCount returns the number of blocks in the blockchain.
func (c *Client) GetBlockCount() (uint32, error) {
	var resp uint32
	if err := c.performRequest("getblockcount", nil, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// InvokeScript returns the result of the given script after running it through
// the VM. Hashes given are treated as accounts that have witnessed the
// invocation.
// NOTE: This is a test invoke and will not affect the blockchain.
func (c *Client) InvokeScript(script []byte, witnesses ...util.Uint160) (*result.Invoke, error) {
	var (
		p    = []any{hex.EncodeToString(script)}
		resp = new(result.Invoke)
	)
	if len(witnesses) != 0 {
		p = append(p, witnesses)
	}
	if err := c.performRequest("invokescript", p, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SendRawTransaction broadcasts the given signed transaction to the Neo
// network and returns the hash accepted by the node.
func (c *Client) SendRawTransaction(rawTX *transaction.Transaction) (util.Uint256, error) {
	buf := io.NewBufBinWriter()
	rawTX.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return util.Uint256{}, fmt.Errorf("failed to encode transaction: %w", buf.Err)
	}
	var (
		params = []any{hex.EncodeToString(buf.Bytes())}
		resp   = new(relayResult)
	)
	if err := c.performRequest("sendrawtransaction", params, resp); err != nil {
		return rawTX.Hash(), err
	}
	return resp.Hash, nil
}
