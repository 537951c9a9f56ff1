package server

import (
	"fmt"

	"github.com/ValentinKolb/bKV/lib/store"
	"github.com/ValentinKolb/bKV/rpc/common"
	"github.com/VictoriaMetrics/metrics"
)

func NewNodeServerAdapter() IRPCServerAdapter {
	return &nodeServerAdapterImpl{}
}

type nodeServerAdapterImpl struct{}

func (adapter *nodeServerAdapterImpl) Handle(req *common.Message, node store.INode) *common.Message {
	// Check for nil node
	if node == nil {
		return common.NewErrorResponse("handler: node is nil")
	}

	metrics.GetOrCreateCounter(fmt.Sprintf(`bkv_requests_total{op=%q}`, req.MsgType.String())).Inc()

	// Handle different message types
	switch req.MsgType {
	case common.MsgTInsert:
		head, err := node.Append(req.Mods)
		return common.NewInsertResponse(head, err)
	case common.MsgTInfo:
		info, err := node.Info()
		return common.NewInfoResponse(info.Head, info.Size, err)
	case common.MsgTFetch:
		result, err := node.Fetch(req.Begin, req.End, req.Head)
		return common.NewFetchResponse(result.Head, result.Entries, result.Diff, err)
	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC NodeAdapter - Unsupported message type: %s", req.MsgType),
		)
	}
}
