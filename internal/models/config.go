package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// TaggingConfig holds the classification thresholds. The defaults are the
// production values; they are configurable so a restaurant group can tune
// tiers without a redeploy.
type TaggingConfig struct {
	LTVPercentile       float64 `mapstructure:"ltv_percentile"`
	AOVPercentile       float64 `mapstructure:"aov_percentile"`
	VisitFreqPercentile float64 `mapstructure:"visit_freq_percentile"`
	MidSpenderRatio     float64 `mapstructure:"mid_spender_ratio"`

	NewCustomerGapRatio float64 `mapstructure:"new_customer_gap_ratio"`
	ActiveGapRatio      float64 `mapstructure:"active_gap_ratio"`
	ChurnGapRatio       float64 `mapstructure:"churn_gap_ratio"`
	InactiveDays        float64 `mapstructure:"inactive_days"`

	ComboOrderMin       int     `mapstructure:"combo_order_min"`
	WeekendShare        float64 `mapstructure:"weekend_share"`
	CategoryShare       float64 `mapstructure:"category_share"`
	FamilyGuestMin      float64 `mapstructure:"family_guest_min"`
	MealShare           float64 `mapstructure:"meal_share"`
	PriceSensitiveBelow float64 `mapstructure:"price_sensitive_below"`
	PremiumSeekerAbove  float64 `mapstructure:"premium_seeker_above"`

	ActiveWindowDays float64 `mapstructure:"active_window_days"`
	TopLTVShare      float64 `mapstructure:"top_ltv_share"`
}

// DefaultTaggingConfig returns the stock thresholds.
func DefaultTaggingConfig() TaggingConfig {
	return TaggingConfig{
		LTVPercentile:       90,
		AOVPercentile:       80,
		VisitFreqPercentile: 80,
		MidSpenderRatio:     0.6,
		NewCustomerGapRatio: 0.5,
		ActiveGapRatio:      1.5,
		ChurnGapRatio:       2.0,
		InactiveDays:        90,
		ComboOrderMin:       3,
		WeekendShare:        0.7,
		CategoryShare:       0.6,
		FamilyGuestMin:      3,
		MealShare:           0.7,
		PriceSensitiveBelow: 200,
		PremiumSeekerAbove:  800,
		ActiveWindowDays:    30,
		TopLTVShare:         0.1,
	}
}

// CloudStorageConfig points parquet exports at a bucket.
type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	RestaurantID          string  `mapstructure:"restaurant_id"`
	RestaurantAvgVisitGap float64 `mapstructure:"restaurant_avg_visit_gap"`

	InputSource   string `mapstructure:"input_source"` // postgres, json or demo
	InputFile     string `mapstructure:"input_file"`
	DatabaseURL   string `mapstructure:"database_url"`
	DemoCustomers int    `mapstructure:"demo_customers"`
	Seed          int64  `mapstructure:"seed"`

	OutputDestination string `mapstructure:"output_destination"` // console, json or parquet
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`

	Tagging TaggingConfig `mapstructure:"tagging"`
}

// LoadConfig initializes and reads the configuration using Viper.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()
	setTaggingDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

func setTaggingDefaults() {
	defaults := DefaultTaggingConfig()
	viper.SetDefault("tagging.ltv_percentile", defaults.LTVPercentile)
	viper.SetDefault("tagging.aov_percentile", defaults.AOVPercentile)
	viper.SetDefault("tagging.visit_freq_percentile", defaults.VisitFreqPercentile)
	viper.SetDefault("tagging.mid_spender_ratio", defaults.MidSpenderRatio)
	viper.SetDefault("tagging.new_customer_gap_ratio", defaults.NewCustomerGapRatio)
	viper.SetDefault("tagging.active_gap_ratio", defaults.ActiveGapRatio)
	viper.SetDefault("tagging.churn_gap_ratio", defaults.ChurnGapRatio)
	viper.SetDefault("tagging.inactive_days", defaults.InactiveDays)
	viper.SetDefault("tagging.combo_order_min", defaults.ComboOrderMin)
	viper.SetDefault("tagging.weekend_share", defaults.WeekendShare)
	viper.SetDefault("tagging.category_share", defaults.CategoryShare)
	viper.SetDefault("tagging.family_guest_min", defaults.FamilyGuestMin)
	viper.SetDefault("tagging.meal_share", defaults.MealShare)
	viper.SetDefault("tagging.price_sensitive_below", defaults.PriceSensitiveBelow)
	viper.SetDefault("tagging.premium_seeker_above", defaults.PremiumSeekerAbove)
	viper.SetDefault("tagging.active_window_days", defaults.ActiveWindowDays)
	viper.SetDefault("tagging.top_ltv_share", defaults.TopLTVShare)
}
