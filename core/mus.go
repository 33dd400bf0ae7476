package core

import (
	"fmt"
	"time"

	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/shopspring/decimal"
)

// MUS serializers for records persisted by the storage layer.
// Field order is part of the stored format; append new fields, never reorder.

var (
	// IDMUS serializes ID values.
	IDMUS = idMUS{}
	// PartRecordMUS serializes PartRecord values.
	PartRecordMUS = partRecordMUS{}
)

var (
	_ mus.Serializer[ID]         = IDMUS
	_ mus.Serializer[PartRecord] = PartRecordMUS
)

var vectorMUS = ord.NewSliceSer[float32](varint.Float32)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) int { return varint.Uint64.Marshal(uint64(v), bs) }

func (s idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (s idMUS) Size(v ID) int { return varint.Uint64.Size(uint64(v)) }

func (s idMUS) Skip(bs []byte) (int, error) { return varint.Uint64.Skip(bs) }

type partRecordMUS struct{}

func (s partRecordMUS) Marshal(v PartRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.PartNumber, bs)
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Material, bs[n:])
	n += ord.String.Marshal(v.Form, bs[n:])
	n += ord.String.Marshal(v.Dimensions, bs[n:])
	n += ord.String.Marshal(v.UnitPrice.String(), bs[n:])
	n += varint.Int64.Marshal(v.Availability, bs[n:])
	n += ord.String.Marshal(v.Supplier, bs[n:])
	n += varint.Float64.Marshal(v.WeightPerUnit, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (s partRecordMUS) Unmarshal(bs []byte) (v PartRecord, n int, err error) {
	var n1 int
	if v.PartNumber, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Material, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Form, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Dimensions, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var price string
	if price, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.UnitPrice, err = decimal.NewFromString(price); err != nil {
		return v, n, fmt.Errorf("unit price: %w", err)
	}
	if v.Availability, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Supplier, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.WeightPerUnit, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.InsertedAt = time.UnixMicro(micros).UTC()
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.UpdatedAt = time.UnixMicro(micros).UTC()
	return v, n, nil
}

func (s partRecordMUS) Size(v PartRecord) (size int) {
	size = ord.String.Size(v.PartNumber)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.Material)
	size += ord.String.Size(v.Form)
	size += ord.String.Size(v.Dimensions)
	size += ord.String.Size(v.UnitPrice.String())
	size += varint.Int64.Size(v.Availability)
	size += ord.String.Size(v.Supplier)
	size += varint.Float64.Size(v.WeightPerUnit)
	size += vectorMUS.Size(v.Vector)
	size += varint.Int64.Size(v.InsertedAt.UnixMicro())
	size += varint.Int64.Size(v.UpdatedAt.UnixMicro())
	return size
}

func (s partRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 6; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	if n1, err = varint.Int64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = varint.Float64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = vectorMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	for i := 0; i < 2; i++ {
		if n1, err = varint.Int64.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}
