package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/tableloyal/tableloyal/internal/cloudwriter"
	"github.com/tableloyal/tableloyal/internal/models"
)

// ParquetSink writes one parquet file per topic, either on local disk or
// straight to object storage when a cloud provider is configured.
type ParquetSink struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

// CloudParquetFile adapts a CloudWriter to the parquet source interface.
// Object stores are write-once, so reads and seeks from the end are rejected.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cw cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cw}
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

func NewParquetSink(cfg *models.Config) (*ParquetSink, error) {
	p := &ParquetSink{
		basePath: cfg.OutputPath,
		folder:   cfg.OutputFolder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if cfg.CloudStorage.Provider != "" && cfg.CloudStorage.Provider != "local" {
		var factory cloudwriter.CloudWriterFactory
		var err error

		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err = cloudwriter.NewS3WriterFactory(cfg.CloudStorage.Region)
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}

		p.cloudWriterFactory = factory
		p.cloudBucketName = cfg.CloudStorage.BucketName
	}

	p.cleanup()

	return p, nil
}

func (p *ParquetSink) WriteMessage(topic string, msg []byte) error {
	record, err := decodeRecord(topic, msg)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pw, ok := p.writers[topic]
	if !ok {
		pw, err = p.createNewWriter(topic)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	if err := pw.Write(record); err != nil {
		return fmt.Errorf("failed to write record to %s: %w", topic, err)
	}
	return nil
}

func (p *ParquetSink) createNewWriter(topic string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	var err error
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, topic, "data.parquet")
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cloudWriter)
	} else {
		dir := filepath.Join(p.basePath, p.folder, topic)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(dir, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	sc, err := GetSchema(topic)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, nil, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.SchemaHandler = sc

	p.writers[topic] = pw
	p.files[topic] = fw

	return pw, nil
}

func (p *ParquetSink) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for topic, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			return fmt.Errorf("failed to finalize parquet writer for %s: %w", topic, err)
		}
	}
	for topic, fw := range p.files {
		if err := fw.Close(); err != nil {
			return fmt.Errorf("failed to close parquet file for %s: %w", topic, err)
		}
	}
	return nil
}

// cleanup removes parquet files left behind by a previous run.
func (p *ParquetSink) cleanup() {
	fullPath := filepath.Join(p.basePath, p.folder)
	err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".parquet" {
			return os.Remove(path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("error cleaning up parquet files")
	}
}

// decodeRecord turns a topic payload back into the flat record the parquet
// schema expects.
func decodeRecord(topic string, msg []byte) (interface{}, error) {
	switch topic {
	case models.TopicTagResults:
		var r models.TagCalculationResult
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, err
		}
		return newTagResultRecord(r), nil
	case models.TopicTriggers:
		var t models.AutomationTrigger
		if err := json.Unmarshal(msg, &t); err != nil {
			return nil, err
		}
		return newTriggerRecord(t), nil
	case models.TopicCampaignMessages:
		var m models.CampaignMessage
		if err := json.Unmarshal(msg, &m); err != nil {
			return nil, err
		}
		return newCampaignMessageRecord(m), nil
	case models.TopicRestaurantSummary:
		var s models.RestaurantCustomerSummary
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, err
		}
		return newSummaryRecord(s), nil
	}
	return nil, fmt.Errorf("unknown topic: %s", topic)
}
