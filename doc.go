// Package regpipe trains and evaluates a linear regression model on a
// tabular dataset in one sequential batch job.
//
// The job runs five steps in a fixed order, each in its own package:
//
//   - dataset: Ingest a delimited file into a gota DataFrame
//   - preprocessing: Clean (drop, impute, fill, keep numeric) and Split
//   - training: Train a model looked up by kind in a Registry
//   - metrics: Evaluate MSE, RMSE and R² on the held-out rows
//   - pipeline: Run drives the steps and stops at the first error
//
// Supporting packages:
//
//   - linear: ordinary least squares via gonum QR
//   - core/model: Fitter, Predictor and Regressor interfaces, fitted-state tracking
//   - report: YAML run summary and predicted-vs-actual plot
//   - pkg/errors, pkg/log, pkg/config: error taxonomy, structured logging, viper config
//
// # Quick Start
//
//	report, err := pipeline.Run(ctx, "data/customers_dataset.csv", "LinearRegressionModel")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("MSE=%.4f RMSE=%.4f R2=%.4f\n", report.MSE, report.RMSE, report.R2)
//
// Or from the command line:
//
//	regpipe train --data data/customers_dataset.csv --plot predictions.png
//	regpipe inspect --data data/customers_dataset.csv
//
// Every failure is a typed error from pkg/errors (IOError, DataError,
// TrainingError, EvaluationError, ValidationError) carrying a stack trace.
package regpipe
