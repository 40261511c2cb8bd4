package provisioning

import (
	"crypto/elliptic"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/bnb-chain/tss-lib/v2/ecdsa/keygen"
	"github.com/bnb-chain/tss-lib/v2/tss"
)

var (
	bo           = binary.BigEndian
	errTruncated = errors.New("provisioning: truncated message")
	curve        = elliptic.P256()
)

type msgType byte

const (
	msgTSS msgType = iota
	msgDone
)

// Peer is a two-party participant in the key-provisioning ceremony,
// adapted from crypto/tss.Peer: same PartyID bookkeeping and
// channel-driven LocalParty event loop, narrowed to key generation only
// (this package has no use for threshold signing).
type Peer struct {
	io      PeerIO
	ctx     *tss.PeerContext
	PartyID *tss.PartyID
}

func init() {
	tss.RegisterCurve("secp256r1", elliptic.P256())
}

func makePartyID(id string) *tss.PartyID {
	var keyData []byte
	const moniker = "uvmac-provisioning"

	keyData = append(keyData, []byte(id)...)
	keyData = append(keyData, []byte(moniker)...)

	key := new(big.Int).SetBytes(keyData)
	return tss.NewPartyID(id, moniker, key)
}

// NewPeer creates one side of the two-party ceremony. evaluator selects
// which of the two fixed party IDs ("A", "B") this process plays.
func NewPeer(io PeerIO, evaluator bool) (*Peer, error) {
	ids := tss.SortPartyIDs(tss.UnSortedPartyIDs{
		makePartyID("A"),
		makePartyID("B"),
	})

	this := "B"
	if evaluator {
		this = "A"
	}

	var id *tss.PartyID
	for _, i := range ids {
		if i.Id == this {
			id = i
		}
	}

	return &Peer{
		io:      io,
		ctx:     tss.NewPeerContext(ids),
		PartyID: id,
	}, nil
}

// Keygen runs the two-party threshold ECDSA key generation and returns
// this peer's local save data. save.Xi is this peer's private share: it
// is never transmitted over io, only the protocol's own broadcast/P2P
// messages are.
func (peer *Peer) Keygen() (*keygen.LocalPartySaveData, error) {
	errC := make(chan *tss.Error)
	outC := make(chan tss.Message)
	endC := make(chan *keygen.LocalPartySaveData)

	n := len(peer.ctx.IDs())
	params := tss.NewParameters(curve, peer.ctx, peer.PartyID, n, 1)
	party := keygen.NewLocalParty(params, outC, endC).(*keygen.LocalParty)

	go func() {
		if err := party.Start(); err != nil {
			errC <- err
		}
	}()

	inC := make(chan []byte)
	go peer.ioReader(party, inC, errC)

	for {
		select {
		case err := <-errC:
			return nil, peer.sendError(err)

		case msg := <-outC:
			dst := msg.GetTo()
			if dst != nil && dst[0].Index == msg.GetFrom().Index {
				return nil, peer.sendError(
					fmt.Errorf("party %v sending a message to itself",
						peer.PartyID))
			}

			data, err := marshalTSSMessage(msg)
			if err != nil {
				return nil, peer.sendError(party.WrapError(err))
			}
			if err := peer.io.SendData(data); err != nil {
				return nil, party.WrapError(err)
			}
			if err := peer.io.Flush(); err != nil {
				return nil, party.WrapError(err)
			}

		case save := <-endC:
			return save, peer.sendDone()

		case in := <-inC:
			msg, err := unmarshalTSSMessage(in)
			if err != nil {
				return nil, peer.sendError(err)
			}
			go func() {
				_, err := party.Update(msg)
				if err != nil {
					errC <- party.WrapError(err)
				}
			}()
		}
	}
}

func (peer *Peer) sendError(err error) error {
	msg := []byte(err.Error())
	buf := make([]byte, 1+len(msg))
	buf[0] = byte(msgDone)
	copy(buf[1:], msg)

	if serr := peer.sendDoneMsg(buf); serr != nil {
		return serr
	}
	return err
}

func (peer *Peer) sendDone() error {
	return peer.sendDoneMsg([]byte{byte(msgDone)})
}

func (peer *Peer) sendDoneMsg(data []byte) error {
	if err := peer.io.SendData(data); err != nil {
		return err
	}
	return peer.io.Flush()
}

func (peer *Peer) ioReader(party tss.Party, inC chan []byte, errC chan *tss.Error) {
	for {
		data, err := peer.io.ReceiveData()
		if err != nil {
			errC <- party.WrapError(err)
			return
		}
		if len(data) == 0 {
			errC <- party.WrapError(errTruncated)
			return
		}
		switch msgType(data[0]) {
		case msgTSS:
			inC <- data

		case msgDone:
			if len(data) > 1 {
				errC <- party.WrapError(errors.New(string(data[1:])))
			}
			return

		default:
			errC <- party.WrapError(fmt.Errorf("invalid message %d", data[0]))
			return
		}
	}
}

func marshalTSSMessage(msg tss.Message) ([]byte, error) {
	msgData, _, err := msg.WireBytes()
	if err != nil {
		return nil, err
	}
	fromData, err := json.Marshal(msg.GetFrom())
	if err != nil {
		return nil, err
	}

	l := 1 + 4 + len(msgData) + len(fromData) + 1
	data := make([]byte, l)
	data[0] = byte(msgTSS)
	bo.PutUint32(data[1:], uint32(len(msgData)))
	copy(data[5:], msgData)
	copy(data[5+len(msgData):], fromData)
	if msg.IsBroadcast() {
		data[l-1] = 1
	}
	return data, nil
}

func unmarshalTSSMessage(data []byte) (tss.ParsedMessage, error) {
	if len(data) < 6 {
		return nil, errTruncated
	}
	msgLen := int(bo.Uint32(data[1:]))
	if 1+4+msgLen+1 > len(data) {
		return nil, errTruncated
	}
	if msgType(data[0]) != msgTSS {
		return nil, fmt.Errorf("invalid TSS message: %d", data[0])
	}
	msgData := data[5 : 5+msgLen]
	fromData := data[5+msgLen : len(data)-1]
	isBroadcast := data[len(data)-1] == 1

	var from tss.PartyID
	if err := json.Unmarshal(fromData, &from); err != nil {
		return nil, err
	}
	return tss.ParseWireMessage(msgData, &from, isBroadcast)
}
