// Package preprocess turns a raw feature table into a numeric matrix and
// replays the same transformation on later tables.
//
// Fit partitions the columns into numeric and categorical, fills missing
// numeric cells with the column median and missing categorical cells with
// the most frequent value, label-encodes categorical columns over their
// sorted classes and standardises the numeric columns. The learned state is
// returned as a Fitted value whose Transform method applies it to new data:
//
//	fitted, train, err := preprocess.Fit(ctx, trainFrame)
//	test, err := fitted.Transform(ctx, testFrame)
//
// Transform requires the fitted column set and kinds. Categorical values
// never seen during Fit are encoded as the first fitted class.
//
// Preprocessor wraps the pair behind a single Preprocess(ctx, frame, fit)
// call for drivers that hold one instance per training run.
package preprocess
