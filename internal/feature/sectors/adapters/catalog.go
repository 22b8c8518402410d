// Package adapters provides the sector configuration table.
package adapters

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	quote "sector_dashboard/internal/feature/quotes/domain/entity"
)

// SectorConfig maps one named sector to its constituent symbols. The table
// is static configuration, never computed.
type SectorConfig struct {
	Name    string   `yaml:"name"`
	Symbols []string `yaml:"symbols"`
}

// Catalog holds the per-market sector tables. Slice order is the publication
// order: aggregation emits sectors exactly as configured here.
type Catalog struct {
	cn []SectorConfig
	us []SectorConfig
}

// catalogFile is the YAML shape of an override file.
type catalogFile struct {
	CN []SectorConfig `yaml:"cn"`
	US []SectorConfig `yaml:"us"`
}

// DefaultCatalog returns the built-in tables: ten sectors per market.
func DefaultCatalog() *Catalog {
	return &Catalog{
		cn: []SectorConfig{
			{Name: "科技", Symbols: []string{"sz300750", "sz300014", "sz300498", "sz300033", "sh688008", "sh688111"}},
			{Name: "金融", Symbols: []string{"sh601318", "sh601328", "sh601398", "sh601939", "sh601288", "sh601818"}},
			{Name: "医疗保健", Symbols: []string{"sz000538", "sz002422", "sh600276", "sh600519", "sh603259", "sh600196"}},
			{Name: "消费", Symbols: []string{"sz000858", "sh600519", "sh600887", "sh600298", "sh600600", "sh600885"}},
			{Name: "工业", Symbols: []string{"sh601688", "sh601100", "sh601766", "sh600170", "sh601899", "sh601186"}},
			{Name: "能源", Symbols: []string{"sh601857", "sh601238", "sh601808", "sh600028", "sh601088", "sh600348"}},
			{Name: "房地产", Symbols: []string{"sh600048", "sh600383", "sh600208", "sh600376", "sh600675", "sh600585"}},
			{Name: "公用事业", Symbols: []string{"sh600027", "sh600900", "sh600011", "sh600167", "sh600350", "sh600116"}},
			{Name: "材料", Symbols: []string{"sh600585", "sh600196", "sh600362", "sh600516", "sh601600", "sh600392"}},
			{Name: "通信服务", Symbols: []string{"sh600030", "sh600050", "sh600718", "sh600941", "sz000063", "sz000034"}},
		},
		us: []SectorConfig{
			{Name: "Technology", Symbols: []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA", "META", "AVGO"}},
			{Name: "Financials", Symbols: []string{"JPM", "BAC", "WFC", "C", "GS", "MS", "AXP", "BLK"}},
			{Name: "Healthcare", Symbols: []string{"JNJ", "PFE", "MRK", "ABT", "ABBV", "UNH", "CVS", "MDT"}},
			{Name: "Consumer Cyclical", Symbols: []string{"AMZN", "TSLA", "HD", "MCD", "NKE", "DIS", "SBUX", "TGT"}},
			{Name: "Industrials", Symbols: []string{"BA", "CAT", "HON", "MMM", "GD", "LMT", "RTX", "UPS"}},
			{Name: "Energy", Symbols: []string{"XOM", "CVX", "RDS-A", "RDS-B", "PTR", "BHP", "LIN", "NEE"}},
			{Name: "Real Estate", Symbols: []string{"AMT", "PLD", "CCI", "EQIX", "PSA", "DLR", "O", "SBAC"}},
			{Name: "Utilities", Symbols: []string{"NEE", "DUK", "SO", "D", "EXC", "PCG", "XEL", "SRE"}},
			{Name: "Materials", Symbols: []string{"LIN", "SHW", "ECL", "DOW", "NEM", "APD", "PPG", "VMC"}},
			{Name: "Communication Services", Symbols: []string{"GOOGL", "META", "AMZN", "DIS", "CMCSA", "T", "VZ", "CHTR"}},
		},
	}
}

// LoadCatalog reads a YAML override file. Markets missing from the file keep
// the built-in table.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sector config: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse sector config: %w", err)
	}

	c := DefaultCatalog()
	if len(f.CN) > 0 {
		c.cn = f.CN
	}
	if len(f.US) > 0 {
		c.us = f.US
	}
	return c, nil
}

// Sectors returns the configured table for one market, in insertion order.
func (c *Catalog) Sectors(market quote.Market) []SectorConfig {
	switch market {
	case quote.MarketCN:
		return c.cn
	case quote.MarketUS:
		return c.us
	default:
		return nil
	}
}
