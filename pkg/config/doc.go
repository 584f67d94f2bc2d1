// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads hostmetrics settings from a YAML file, the environment
// and an optional .env file.
//
// Precedence, highest first: explicit overrides (CLI flags), HOSTMETRICS_*
// environment variables, the config file, built-in defaults. Variables from
// a .env file never replace variables already present in the environment.
//
//	cfg, err := config.Load(config.WithFile("/etc/hostmetrics.yaml"))
//	if err != nil {
//		return err
//	}
//	factory := collector.NewDefaultFactory(collector.WithFS(cfg.FS()))
//
// Keys use dashes in files and underscores in the environment:
// proc-root is read from HOSTMETRICS_PROC_ROOT.
package config
