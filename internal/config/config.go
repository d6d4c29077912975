package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/patrickprogramme/chordsheet/internal/assets"
	"github.com/patrickprogramme/chordsheet/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	OutputDir string `yaml:"output_dir"`

	// Notations par défaut (surchargeables par flags)
	InputFormat  string `yaml:"input_format"`
	OutputFormat string `yaml:"output_format"`

	// Presse-papier
	CopyToClipboard bool `yaml:"copy_to_clipboard"`

	// Mode watch
	WatchDebounceMs int `yaml:"watch_debounce_ms"`

	// typst (rendu PDF)
	Typst struct {
		Name         string `yaml:"name"`
		Path         string `yaml:"path"`
		FontPath     string `yaml:"font_path"`
		ShowWarnings bool   `yaml:"show_warnings"`

		// ResolvedPath contient le chemin effectif vers l'exécutable
		ResolvedPath string `yaml:"-"`
	} `yaml:"typst"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.OutputDir = "."
	c.InputFormat = "chordpro"
	c.OutputFormat = "chordpro"
	c.CopyToClipboard = false
	c.WatchDebounceMs = 300

	c.Typst.Name = "typst"
	c.Typst.Path = ""
	c.Typst.FontPath = ""
	c.Typst.ShowWarnings = false

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué
// depuis internal/assets. Les variables d'environnement (éventuellement via
// un fichier .env) ont le dernier mot.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "chordsheet.yaml"
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.applyEnvOverrides()
	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		// re-normaliser au cas où la migration a modifié des valeurs
		cfg.normalizeConfig()
	}

	return cfg, nil
}

// applyEnvOverrides charge un éventuel fichier .env puis applique les
// variables d'environnement CHORDSHEET_* par-dessus la config fichier.
func (c *Config) applyEnvOverrides() {
	_ = godotenv.Load()

	if v := os.Getenv("CHORDSHEET_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("CHORDSHEET_INPUT_FORMAT"); v != "" {
		c.InputFormat = v
	}
	if v := os.Getenv("CHORDSHEET_OUTPUT_FORMAT"); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv("CHORDSHEET_TYPST_PATH"); v != "" {
		c.Typst.Path = v
	}
	if v := os.Getenv("CHORDSHEET_TYPST_FONT_PATH"); v != "" {
		c.Typst.FontPath = v
	}
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("échec mkdir pour la configuration %s : %w", filepath.Dir(dstPath), err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

func (c *Config) normalizeConfig() {
	c.OutputDir = filepath.Clean(c.OutputDir)

	c.InputFormat = strings.TrimSpace(strings.ToLower(c.InputFormat))
	if c.InputFormat == "" {
		c.InputFormat = "chordpro"
	}
	c.OutputFormat = strings.TrimSpace(strings.ToLower(c.OutputFormat))
	if c.OutputFormat == "" {
		c.OutputFormat = "chordpro"
	}

	if c.WatchDebounceMs <= 0 {
		c.WatchDebounceMs = 300
	}

	// centraliser la résolution/normalisation de typst
	c.ResolveTypstPath()
}

// ResolveTypstPath normalise le nom et résout le chemin complet vers
// l'exécutable. Appeler après avoir modifié cfg.Typst.Name ou cfg.Typst.Path.
// Un Path vide laisse ResolvedPath vide : on s'en remet alors au PATH système.
func (c *Config) ResolveTypstPath() {
	if c == nil {
		return
	}

	c.Typst.Name = strings.TrimSpace(c.Typst.Name)
	if c.Typst.Name == "" {
		c.Typst.Name = "typst"
	}

	// ajoute .exe si nécessaire
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(c.Typst.Name), ".exe") {
		c.Typst.Name = c.Typst.Name + ".exe"
	}

	exeName := c.Typst.Name
	cfgPath := strings.TrimSpace(c.Typst.Path)
	if cfgPath == "" {
		c.Typst.ResolvedPath = ""
		return
	}
	cleanPath := filepath.Clean(cfgPath)

	// un répertoire existant l'emporte sur l'heuristique du nom : un dossier
	// d'installation peut porter le même nom que l'exécutable (ex: /opt/typst)
	if st, err := os.Stat(cleanPath); err == nil && st.IsDir() {
		c.Typst.ResolvedPath = filepath.Join(cleanPath, exeName)
		return
	}

	// si le chemin fourni finit déjà par l'exécutable -> on l'utilise
	if filepath.Base(cleanPath) == exeName {
		c.Typst.ResolvedPath = cleanPath
	} else {
		// sinon on considère cfgPath comme un répertoire et on y joint l'exe
		c.Typst.ResolvedPath = filepath.Join(cleanPath, exeName)
	}
}
