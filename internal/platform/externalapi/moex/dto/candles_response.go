// Package dto はISS APIレスポンスのデータ転送オブジェクトを定義します。
package dto

import "encoding/json"

// CandlesResponse はISS candles.json エンドポイントからのJSONレスポンスを表します。
// ISS はテーブルを列名の配列と行の配列で返します。
type CandlesResponse struct {
	Candles Table `json:"candles"`
}

// Table はISSのテーブル形式です。Data の各行は Columns と同じ並びです。
type Table struct {
	Columns []string            `json:"columns"`
	Data    [][]json.RawMessage `json:"data"`
}

// Index は列名から位置への対応を返します。
func (t Table) Index() map[string]int {
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		idx[c] = i
	}
	return idx
}
